// Package schema resolves variant dataset column names to canonical fields.
package schema

// Kind classifies a canonical field by how downstream components use it.
type Kind uint8

const (
	KindIdentifier Kind = iota + 1
	KindEmail
	KindGroup
	KindOverall
	KindSkill
	KindSecondary
	KindFeedback
)

// Canonical keys.
const (
	KeyName                = "representative_name"
	KeyEmail               = "representative_email"
	KeyTeam                = "team"
	KeyOverall             = "overall_score"
	KeyWriting             = "writing_score"
	KeyAccuracy            = "accuracy_score"
	KeyEmpathy             = "empathy_score"
	KeyCX                  = "cx_rating"
	KeyWritingExplanation  = "writing_explanation"
	KeyAccuracyExplanation = "accuracy_explanation"
	KeyEmpathyExplanation  = "empathy_explanation"
	KeyFeedback            = "feedback_overall"
)

// Field is one canonical key with its ordered alias list.
type Field struct {
	Key      string
	Kind     Kind
	Required bool
	Aliases  []string

	// Label and Scale drive presentation only.
	Label string
	Scale float64
}

// Numeric reports whether the field carries a score.
func (f Field) Numeric() bool {
	return f.Kind == KindOverall || f.Kind == KindSkill || f.Kind == KindSecondary
}

// Table is the ordered canonical-key -> alias list lookup.
type Table []Field

// DefaultTable returns the built-in scorecard alias table.
func DefaultTable() Table {
	return Table{
		{Key: KeyName, Kind: KindIdentifier, Required: true, Label: "Representative",
			Aliases: []string{"Representative Name", "Agent Name", "Rep Name", "Name"}},
		{Key: KeyEmail, Kind: KindEmail, Label: "Email",
			Aliases: []string{"Representative Email", "Agent Email", "Rep Email", "Email"}},
		{Key: KeyTeam, Kind: KindGroup, Label: "Team",
			Aliases: []string{"Team", "Team Name", "Group"}},
		{Key: KeyOverall, Kind: KindOverall, Label: "QA Score", Scale: 3,
			Aliases: []string{"Score", "Overall Score", "QA Score", "Overall QA Score"}},
		{Key: KeyWriting, Kind: KindSkill, Label: "Writing Style", Scale: 3,
			Aliases: []string{"Writing style (Score)", "Writing Score", "Writing (Score)"}},
		{Key: KeyAccuracy, Kind: KindSkill, Label: "Accuracy", Scale: 3,
			Aliases: []string{"Accuracy (Score)", "Accuracy Score"}},
		{Key: KeyEmpathy, Kind: KindSkill, Label: "Empathy & Helpfulness", Scale: 3,
			Aliases: []string{"Empathy & Hepfulness (Score)", "Empathy Score", "Empathy (Score)", "Empathy & Helpfulness (Score)"}},
		{Key: KeyCX, Kind: KindSecondary, Label: "CX Score", Scale: 5,
			Aliases: []string{"Customer Experience (CX) rating", "CX Rating", "CX Score", "Customer Experience Rating"}},
		{Key: KeyWritingExplanation, Kind: KindFeedback, Label: "Writing Feedback",
			Aliases: []string{"Writing style (Explanation)", "Writing Explanation", "Writing (Explanation)"}},
		{Key: KeyAccuracyExplanation, Kind: KindFeedback, Label: "Accuracy Feedback",
			Aliases: []string{"Accuracy (Explanation)", "Accuracy Explanation"}},
		{Key: KeyEmpathyExplanation, Kind: KindFeedback, Label: "Empathy Feedback",
			Aliases: []string{"Empathy & Hepfulness (Explanation)", "Empathy Explanation", "Empathy (Explanation)", "Empathy & Helpfulness (Explanation)"}},
		{Key: KeyFeedback, Kind: KindFeedback, Label: "Feedback",
			Aliases: []string{"Feedback Focus Areas", "Overall Feedback", "Feedback", "Focus Areas"}},
	}
}

// Field returns the definition for key.
func (t Table) Field(key string) (Field, bool) {
	for _, f := range t {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// WithAliases returns a copy of t with extra aliases appended per key.
// Unknown keys are ignored; duplicates of existing aliases are skipped.
func (t Table) WithAliases(extra map[string][]string) Table {
	out := make(Table, len(t))
	for i, f := range t {
		aliases := append([]string(nil), f.Aliases...)
		for _, a := range extra[f.Key] {
			if !contains(aliases, a) && a != "" {
				aliases = append(aliases, a)
			}
		}
		f.Aliases = aliases
		out[i] = f
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
