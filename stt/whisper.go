// Package stt wraps the OpenAI Whisper transcription API.
package stt

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/voice-bridge/types"
)

// WhisperClient transcribes recorded audio files. It performs no local
// validation of duration, format or size; the remote service is the sole
// authority on what it accepts.
type WhisperClient struct {
	client *openai.Client
	model  string
}

func NewWhisperClient(client *openai.Client) (*WhisperClient, error) {
	if client == nil {
		return nil, fmt.Errorf("openai client is required")
	}
	return &WhisperClient{
		client: client,
		model:  openai.Whisper1,
	}, nil
}

// Transcribe submits the audio file at path and returns the trimmed
// transcript. Remote failures surface as *types.UpstreamError and are not
// retried locally.
func (w *WhisperClient) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", types.NewUpstreamError(types.StageTranscribe, err)
	}
	return strings.TrimSpace(resp.Text), nil
}
