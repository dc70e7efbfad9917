// Package config collects the environment configuration for the voice bridge
// backend. Values are read once at startup; OPENAI_API_KEY is the only
// required setting and its absence fails the process fast.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Synthesizer backend selectors for TTS_PROVIDER.
const (
	TTSProviderOpenAI     = "openai"
	TTSProviderElevenLabs = "elevenlabs"
)

type Config struct {
	Port         string
	OpenAIAPIKey string
	ChatModel    string

	TTSProvider      string
	TTSVoice         string
	ElevenLabsAPIKey string
	ElevenLabsVoice  string

	// StaticDir is served under /static; generated audio lands in OutputDir.
	StaticDir string
	OutputDir string

	// AudioTTL prunes generated audio older than the given duration.
	// Zero keeps artifacts forever.
	AudioTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8000"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getenv("CHAT_MODEL", "gpt-4o-mini"),
		TTSProvider:      getenv("TTS_PROVIDER", TTSProviderOpenAI),
		TTSVoice:         getenv("TTS_VOICE", "alloy"),
		ElevenLabsAPIKey: os.Getenv("ELEVEN_LABS_API_KEY"),
		ElevenLabsVoice:  os.Getenv("ELEVEN_LABS_VOICE_ID"),
		StaticDir:        getenv("STATIC_DIR", "static"),
	}
	cfg.OutputDir = filepath.Join(cfg.StaticDir, "output")

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	switch cfg.TTSProvider {
	case TTSProviderOpenAI:
	case TTSProviderElevenLabs:
		if cfg.ElevenLabsAPIKey == "" || cfg.ElevenLabsVoice == "" {
			return nil, fmt.Errorf("ELEVEN_LABS_API_KEY and ELEVEN_LABS_VOICE_ID must be set when TTS_PROVIDER=elevenlabs")
		}
	default:
		return nil, fmt.Errorf("unknown TTS_PROVIDER %q", cfg.TTSProvider)
	}

	if ttl := os.Getenv("AUDIO_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid AUDIO_TTL %q: %w", ttl, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("AUDIO_TTL must not be negative")
		}
		cfg.AudioTTL = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
