package tts

import "context"

// Synthesizer converts translated text into speech audio.
type Synthesizer interface {
	// Synthesize renders text as base64-encoded WAV audio in the target
	// language. Implementations degrade to a silent payload of the same
	// container format rather than failing.
	Synthesize(ctx context.Context, text, languageCode string) (string, error)

	// Available reports whether a live synthesis backend is reachable.
	Available(ctx context.Context) bool

	// Close releases any backend resources.
	Close() error
}
