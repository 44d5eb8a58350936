package asr

import "context"

// Mock is the recognizer used when no live backend is configured. It
// reports every chunk as silence, which the connection surfaces as an
// empty partial transcript; demo clients drive the pipeline through text
// input instead.
type Mock struct{}

// NewMock creates a mock recognizer.
func NewMock() *Mock {
	return &Mock{}
}

// Recognize always reports no speech.
func (m *Mock) Recognize(ctx context.Context, audioData []byte, languageCode string) (*Result, error) {
	return &Result{Text: "", IsFinal: false, Confidence: 0}, nil
}

// Available is false: the mock stands in for an absent backend.
func (m *Mock) Available(ctx context.Context) bool {
	return false
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}
