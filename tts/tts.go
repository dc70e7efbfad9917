// Package tts synthesizes spoken audio from reply text and stores the result
// as an mp3 under the public output directory. Two backends are available:
// the OpenAI text-to-speech API and ElevenLabs.
package tts

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// fallbackText is spoken instead of calling the engine with empty input.
const fallbackText = "Sorry, I didn't catch that. Could you say it again?"

// NewAudioFileName returns a collision-free audio file name: 128 random bits
// hex-encoded plus the mp3 extension. Concurrent writers never collide
// because names are independently randomized.
func NewAudioFileName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + ".mp3"
}

// normalize trims the text and substitutes the fallback apology when nothing
// is left, so the engine is never invoked with empty input.
func normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackText
	}
	return text
}

// writeAudio streams audio from r into dir/name. A partially written file is
// removed before the error returns, so a failed synthesis leaves no artifact
// behind.
func writeAudio(dir, name string, r io.Reader) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close audio file: %w", err)
	}
	return nil
}
