package speech

import (
	"context"
	"errors"
)

// Config selects and parameterizes a synthesis backend.
type Config struct {
	Type    string
	BaseURL string
	APIKey  string
	Model   string
	Voice   string
}

// Request describes one clip to synthesize. Voice, Emotion and Dialect
// together with the text form the identity of the clip.
type Request struct {
	Text    string
	Voice   string
	Emotion string
	Dialect string
}

// Synthesizer converts text into a playable audio clip (MP3 bytes).
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// Transcriber converts a recorded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

var (
	// ErrFetchFailure covers network and HTTP errors from the remote service.
	ErrFetchFailure = errors.New("speech service request failed")
	// ErrInvalidResponse covers HTTP success with an unexpected payload shape.
	ErrInvalidResponse = errors.New("unexpected speech service response")
)
