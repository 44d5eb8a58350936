package asr

import "context"

// Result is the outcome of recognizing one audio chunk.
type Result struct {
	// Text is the recognized transcript, empty when no speech was detected.
	Text string

	// IsFinal reports whether the transcript is a final result rather than
	// an interim one. No-speech results are never final.
	IsFinal bool

	// Confidence is the recognition confidence (0.0 to 1.0) if available.
	Confidence float64
}

// Recognizer converts an opaque audio payload into text.
type Recognizer interface {
	// Recognize transcribes a single audio chunk. Empty or silent input
	// yields an empty non-final result, not an error.
	Recognize(ctx context.Context, audioData []byte, languageCode string) (*Result, error)

	// Available reports whether a live recognition backend is reachable.
	Available(ctx context.Context) bool

	// Close releases any backend resources.
	Close() error
}
