package tts

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/voice-bridge/types"
)

// OpenAIClient synthesizes speech with the OpenAI text-to-speech API.
type OpenAIClient struct {
	client       *openai.Client
	voice        openai.SpeechVoice
	outputDir    string
	publicPrefix string
}

func NewOpenAIClient(client *openai.Client, voice, outputDir, publicPrefix string) (*OpenAIClient, error) {
	if client == nil {
		return nil, fmt.Errorf("openai client is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output dir is required")
	}
	if publicPrefix == "" {
		return nil, fmt.Errorf("public prefix is required")
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAIClient{
		client:       client,
		voice:        openai.SpeechVoice(voice),
		outputDir:    outputDir,
		publicPrefix: publicPrefix,
	}, nil
}

// Synthesize converts text to speech and returns the public locator of the
// generated mp3 under the static mount.
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          normalize(text),
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", types.NewUpstreamError(types.StageSynthesize, err)
	}
	defer resp.Close()

	name := NewAudioFileName()
	if err := writeAudio(c.outputDir, name, resp); err != nil {
		return "", err
	}
	return c.publicPrefix + "/" + name, nil
}
