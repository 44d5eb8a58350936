// Package medical post-processes the entity extraction produced by the
// translation LLM: category validation, normalization, and folding of
// entities into a structured clinical summary.
package medical

import "strings"

// Category classifies an extracted medical term.
type Category string

const (
	CategorySymptom    Category = "symptom"
	CategoryCondition  Category = "condition"
	CategoryMedication Category = "medication"
	CategoryAllergy    Category = "allergy"
	CategoryVitalSign  Category = "vital_sign"
	CategoryProcedure  Category = "procedure"
	CategoryDosage     Category = "dosage"
	CategoryOnset      Category = "onset"
	CategorySeverity   Category = "severity"
)

// DefaultCategory is the fallback for unrecognized category labels.
const DefaultCategory = CategorySymptom

var validCategories = map[Category]bool{
	CategorySymptom:    true,
	CategoryCondition:  true,
	CategoryMedication: true,
	CategoryAllergy:    true,
	CategoryVitalSign:  true,
	CategoryProcedure:  true,
	CategoryDosage:     true,
	CategoryOnset:      true,
	CategorySeverity:   true,
}

// Entity is one normalized medical term.
type Entity struct {
	Term     string   `json:"term"`
	Category Category `json:"category"`
	Original string   `json:"original"`
}

// RawTerm is an unvalidated term as returned by the translator LLM.
type RawTerm struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Original string `json:"original"`
}

// Normalize validates and normalizes raw terms from LLM output. Unknown
// categories fall back to the default category rather than being rejected;
// category matching is case- and whitespace-insensitive.
func Normalize(raw []RawTerm) []Entity {
	normalized := make([]Entity, 0, len(raw))
	for _, t := range raw {
		cat := Category(strings.ToLower(strings.TrimSpace(t.Category)))
		if !validCategories[cat] {
			cat = DefaultCategory
		}
		term := t.Term
		if term == "" {
			term = "Unknown"
		}
		normalized = append(normalized, Entity{
			Term:     term,
			Category: cat,
			Original: t.Original,
		})
	}
	return normalized
}

// ClinicalSummary buckets extracted terms for the end-of-session report.
// Slices are never nil so the JSON always carries every bucket.
type ClinicalSummary struct {
	ChiefComplaint []string `json:"chief_complaint"`
	Symptoms       []string `json:"symptoms"`
	Conditions     []string `json:"conditions"`
	Medications    []string `json:"medications"`
	Allergies      []string `json:"allergies"`
	Vitals         []string `json:"vitals"`
	OnsetDuration  []string `json:"onset_duration"`
	Severity       []string `json:"severity"`
	Procedures     []string `json:"procedures"`
}

// BuildSummary folds entities into clinical summary buckets in a single pass.
// The first symptom seen also seeds the chief complaint; dosage folds into
// medications.
func BuildSummary(entities []Entity) ClinicalSummary {
	s := ClinicalSummary{
		ChiefComplaint: []string{},
		Symptoms:       []string{},
		Conditions:     []string{},
		Medications:    []string{},
		Allergies:      []string{},
		Vitals:         []string{},
		OnsetDuration:  []string{},
		Severity:       []string{},
		Procedures:     []string{},
	}

	for _, e := range entities {
		switch e.Category {
		case CategorySymptom:
			s.Symptoms = append(s.Symptoms, e.Term)
			if len(s.ChiefComplaint) == 0 {
				s.ChiefComplaint = append(s.ChiefComplaint, e.Term)
			}
		case CategoryCondition:
			s.Conditions = append(s.Conditions, e.Term)
		case CategoryMedication, CategoryDosage:
			s.Medications = append(s.Medications, e.Term)
		case CategoryAllergy:
			s.Allergies = append(s.Allergies, e.Term)
		case CategoryVitalSign:
			s.Vitals = append(s.Vitals, e.Term)
		case CategoryOnset:
			s.OnsetDuration = append(s.OnsetDuration, e.Term)
		case CategorySeverity:
			s.Severity = append(s.Severity, e.Term)
		case CategoryProcedure:
			s.Procedures = append(s.Procedures, e.Term)
		}
	}

	return s
}
