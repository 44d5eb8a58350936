package tts

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/medinter/translation-gateway/internal/audio"
)

// Mock synthesizes a fixed-duration silent WAV payload, so demo clients
// receive audio in the same container format as a live backend would send.
type Mock struct {
	sampleRate int
}

// NewMock creates a mock synthesizer.
func NewMock(sampleRate int) *Mock {
	return &Mock{sampleRate: sampleRate}
}

// Synthesize returns one second of silence, base64-encoded.
func (m *Mock) Synthesize(ctx context.Context, text, languageCode string) (string, error) {
	wav := audio.Silence(time.Second, m.sampleRate)
	return base64.StdEncoding.EncodeToString(wav), nil
}

// Available is false: the mock stands in for an absent backend.
func (m *Mock) Available(ctx context.Context) bool {
	return false
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}
