// Package pipeline chains transcription, reply generation and speech
// synthesis into the single round trip behind /api/talk.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
)

// Transcriber converts a recorded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// ReplyGenerator produces the assistant's reply for the given user text.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, text string) (string, error)
}

// Synthesizer converts reply text into an audio artifact and returns its
// public locator.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// FileStore persists an uploaded stream for the duration of one pipeline run.
type FileStore interface {
	Store(r io.Reader, suffixHint string) (string, error)
	Release(path string) error
}

// Result aggregates the output of one full voice round trip.
type Result struct {
	UserText string
	BotText  string
	AudioURL string
}

// TalkPipeline runs the three stages in strict sequence, passing each stage's
// output to the next. There are no retries and no partial results: a failed
// run must be retried in full by the caller.
type TalkPipeline struct {
	files FileStore
	stt   Transcriber
	llm   ReplyGenerator
	tts   Synthesizer
}

func New(files FileStore, stt Transcriber, llm ReplyGenerator, tts Synthesizer) (*TalkPipeline, error) {
	if files == nil {
		return nil, fmt.Errorf("file store is required")
	}
	if stt == nil {
		return nil, fmt.Errorf("transcriber is required")
	}
	if llm == nil {
		return nil, fmt.Errorf("reply generator is required")
	}
	if tts == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}
	return &TalkPipeline{files: files, stt: stt, llm: llm, tts: tts}, nil
}

// Run executes transcribe → reply → synthesize on the uploaded audio.
// The upload is written to a temporary file that is released exactly once on
// every exit path, whichever stage fails.
func (p *TalkPipeline) Run(ctx context.Context, upload io.Reader, filename string) (*Result, error) {
	path, err := p.files.Store(upload, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	defer func() {
		if err := p.files.Release(path); err != nil {
			log.Printf("release %s: %v", path, err)
		}
	}()

	userText, err := p.stt.Transcribe(ctx, path)
	if err != nil {
		return nil, err
	}

	botText, err := p.llm.GenerateReply(ctx, userText)
	if err != nil {
		return nil, err
	}

	audioURL, err := p.tts.Synthesize(ctx, botText)
	if err != nil {
		return nil, err
	}

	return &Result{
		UserText: userText,
		BotText:  botText,
		AudioURL: audioURL,
	}, nil
}
