package types

import "fmt"

// Pipeline stage names reported in upstream errors.
const (
	StageTranscribe = "transcribe"
	StageReply      = "reply"
	StageSynthesize = "synthesize"
)

// UpstreamError wraps a failure from a remote AI service (speech-to-text,
// chat completion or text-to-speech). The failing stage is recorded so the
// HTTP boundary can report which capability was unavailable without leaking
// provider internals to the client.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failure: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstreamError(stage string, err error) *UpstreamError {
	return &UpstreamError{Stage: stage, Err: err}
}
