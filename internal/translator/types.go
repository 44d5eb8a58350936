package translator

import (
	"context"

	"github.com/medinter/translation-gateway/internal/medical"
)

// Result is one translation with its extracted medical content.
type Result struct {
	Translation  string            `json:"translation"`
	MedicalTerms []medical.RawTerm `json:"medical_terms"`
	Flags        []string          `json:"flags"`
	Urgency      string            `json:"urgency"`
}

// DefaultUrgency is the fallback when the model omits or mangles urgency.
const DefaultUrgency = "medium"

// Translator converts text between languages and extracts medical entities.
type Translator interface {
	// Translate translates text and extracts medical terms, ambiguity
	// flags, and an urgency rating.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error)

	// Available reports whether a live translation backend is reachable.
	Available(ctx context.Context) bool

	// Close releases any backend resources.
	Close() error
}
