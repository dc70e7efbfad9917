package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mrsingh-rishi/voice-bridge/types"
)

const (
	defaultElevenLabsBaseURL = "https://api.elevenlabs.io"
	defaultElevenLabsModel   = "eleven_multilingual_v2"
)

// ElevenLabsClient synthesizes speech with the ElevenLabs text-to-speech API.
// Unlike the streaming endpoint, the plain synthesis endpoint returns the
// whole mp3 body, which is buffered straight into the output directory.
type ElevenLabsClient struct {
	apiKey       string
	voiceID      string
	modelID      string
	baseURL      string
	httpClient   *http.Client
	outputDir    string
	publicPrefix string
}

func NewElevenLabsClient(apiKey, voiceID, outputDir, publicPrefix string) (*ElevenLabsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if voiceID == "" {
		return nil, fmt.Errorf("voice id is required")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output dir is required")
	}
	if publicPrefix == "" {
		return nil, fmt.Errorf("public prefix is required")
	}
	return &ElevenLabsClient{
		apiKey:       apiKey,
		voiceID:      voiceID,
		modelID:      defaultElevenLabsModel,
		baseURL:      defaultElevenLabsBaseURL,
		httpClient:   http.DefaultClient,
		outputDir:    outputDir,
		publicPrefix: publicPrefix,
	}, nil
}

// Synthesize converts text to speech and returns the public locator of the
// generated mp3 under the static mount.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) (string, error) {
	payload := map[string]any{
		"text":     normalize(text),
		"model_id": c.modelID,
		"voice_settings": map[string]float64{
			"stability":        0.75,
			"similarity_boost": 0.7,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=mp3_44100_128", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", types.NewUpstreamError(types.StageSynthesize, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", types.NewUpstreamError(types.StageSynthesize, fmt.Errorf("bad status: %s", resp.Status))
	}

	name := NewAudioFileName()
	if err := writeAudio(c.outputDir, name, resp.Body); err != nil {
		return "", err
	}
	return c.publicPrefix + "/" + name, nil
}
