package medical

// DisplayInfo carries presentational metadata for a category.
type DisplayInfo struct {
	Color string `json:"color"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

var categoryDisplay = map[Category]DisplayInfo{
	CategorySymptom:    {Color: "#DC2626", Emoji: "🔴", Label: "Symptom"},
	CategoryCondition:  {Color: "#2563EB", Emoji: "🔵", Label: "Condition"},
	CategoryMedication: {Color: "#059669", Emoji: "🟢", Label: "Medication"},
	CategoryAllergy:    {Color: "#D97706", Emoji: "🟡", Label: "Allergy"},
	CategoryVitalSign:  {Color: "#7C3AED", Emoji: "🟣", Label: "Vital Sign"},
	CategoryProcedure:  {Color: "#0891B2", Emoji: "🔷", Label: "Procedure"},
	CategoryDosage:     {Color: "#4F46E5", Emoji: "💊", Label: "Dosage"},
	CategoryOnset:      {Color: "#6B7280", Emoji: "⚪", Label: "Onset/Duration"},
	CategorySeverity:   {Color: "#BE123C", Emoji: "⚠️", Label: "Severity"},
}

// CategoryDisplay returns display metadata for a category, falling back to
// the default category's metadata for unknown input.
func CategoryDisplay(category Category) DisplayInfo {
	if info, ok := categoryDisplay[category]; ok {
		return info
	}
	return categoryDisplay[DefaultCategory]
}
