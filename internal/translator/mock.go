package translator

import (
	"context"
	"sync"

	"github.com/medinter/translation-gateway/internal/medical"
)

// mockDefaults are language-specific canned responses for demo sessions.
var mockDefaults = map[string]Result{
	"zh-CN": {
		Translation: "My chest has been hurting badly since last night",
		MedicalTerms: []medical.RawTerm{
			{Term: "Chest pain", Category: "symptom", Original: "胸口很痛"},
			{Term: "Last night", Category: "onset", Original: "昨天晚上"},
		},
		Flags:   []string{},
		Urgency: "high",
	},
	"es-US": {
		Translation: "I have a very strong headache and I feel dizzy",
		MedicalTerms: []medical.RawTerm{
			{Term: "Severe headache", Category: "symptom", Original: "dolor de cabeza muy fuerte"},
			{Term: "Dizziness", Category: "symptom", Original: "mareado"},
		},
		Flags:   []string{"Dizziness combined with severe headache may indicate neurological emergency"},
		Urgency: "high",
	},
}

// mockPool is rotated through for languages without a specific default.
var mockPool = []Result{
	{
		Translation: "I am allergic to penicillin and I take metformin for diabetes",
		MedicalTerms: []medical.RawTerm{
			{Term: "Penicillin allergy", Category: "allergy", Original: "alergia a penicilina"},
			{Term: "Metformin", Category: "medication", Original: "metformina"},
			{Term: "Diabetes", Category: "condition", Original: "diabetes"},
		},
		Flags:   []string{},
		Urgency: "medium",
	},
	{
		Translation: "The pain is 8 out of 10, sharp, and radiating to my left arm",
		MedicalTerms: []medical.RawTerm{
			{Term: "Pain scale 8/10", Category: "severity", Original: "dolor 8 de 10"},
			{Term: "Sharp pain", Category: "symptom", Original: "dolor agudo"},
			{Term: "Radiating to left arm", Category: "symptom", Original: "se extiende al brazo izquierdo"},
		},
		Flags:   []string{"Chest pain radiating to left arm is a classic sign of myocardial infarction — URGENT"},
		Urgency: "critical",
	},
	{
		Translation: "I have been vomiting since this morning and I cannot keep water down",
		MedicalTerms: []medical.RawTerm{
			{Term: "Vomiting", Category: "symptom", Original: "vomitando"},
			{Term: "This morning", Category: "onset", Original: "desde esta mañana"},
			{Term: "Unable to tolerate fluids", Category: "symptom", Original: "no puedo retener agua"},
		},
		Flags:   []string{"Risk of dehydration — assess fluid status"},
		Urgency: "medium",
	},
	{
		Translation: "My blood pressure was 180 over 110 when I checked at home",
		MedicalTerms: []medical.RawTerm{
			{Term: "Blood pressure 180/110", Category: "vital_sign", Original: "presión arterial 180/110"},
			{Term: "Hypertensive crisis", Category: "condition", Original: "crisis hipertensiva"},
		},
		Flags:   []string{"BP 180/110 is hypertensive urgency/emergency — immediate evaluation needed"},
		Urgency: "critical",
	},
}

// Mock serves deterministic demo translations: a fixed response for
// languages with a canned default, otherwise a rotation through the pool.
type Mock struct {
	mu    sync.Mutex
	index int
}

// NewMock creates a mock translator.
func NewMock() *Mock {
	return &Mock{}
}

// Translate returns canned content for the source language.
func (m *Mock) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Result, error) {
	if def, ok := mockDefaults[sourceLang]; ok {
		result := def
		return &result, nil
	}

	m.mu.Lock()
	result := mockPool[m.index%len(mockPool)]
	m.index++
	m.mu.Unlock()

	return &result, nil
}

// Available is false: the mock stands in for an absent backend.
func (m *Mock) Available(ctx context.Context) bool {
	return false
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}
