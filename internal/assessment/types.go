// Package assessment turns questionnaire answers into readiness scores, a
// risk profile, and an engagement pathway recommendation. Every function is
// pure: answers arrive as explicit input, the catalog supplies the rule
// tables, and nothing is stored between calls.
package assessment

import (
	"time"

	"github.com/halcyonworks/compass/internal/catalog"
)

// Answer is one response to a question. Value carries single-choice, scale,
// and free-text responses; Values carries multi-select responses; Number
// carries numeric responses. Answers are keyed by question id: re-answering
// replaces the earlier answer rather than duplicating it.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      string    `json:"value,omitempty"`
	Values     []string  `json:"values,omitempty"`
	Number     *float64  `json:"number,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	AnsweredAt time.Time `json:"answered_at,omitempty"`
}

// selectedValues returns the option values an answer selected.
func (a Answer) selectedValues() []string {
	if len(a.Values) > 0 {
		return a.Values
	}
	if a.Value != "" {
		return []string{a.Value}
	}
	return nil
}

// CategoryScore is the scored state of one readiness category.
type CategoryScore struct {
	Category string  `json:"category"`
	Label    string  `json:"label,omitempty"`
	Score    int     `json:"score"`
	Weight   float64 `json:"weight"`
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
}

// RiskProfile is the escalated risk level with its contributing factors.
type RiskProfile struct {
	Level   catalog.RiskLevel `json:"level"`
	Factors []string          `json:"factors"`
}

// PathwayRecommendation maps scores and risk onto an engagement pathway.
type PathwayRecommendation struct {
	Pathway           catalog.Pathway `json:"pathway"`
	SuggestedProgram  catalog.Program `json:"suggested_program,omitempty"`
	Confidence        int             `json:"confidence"`
	Rationale         string          `json:"rationale"`
	EstimatedDuration string          `json:"estimated_duration"`
	FocusAreas        []string        `json:"focus_areas"`
}

// AssessmentScores is the full scoring result for one answer set.
type AssessmentScores struct {
	OverallScore         int                   `json:"overall_score"`
	ReadinessBand        string                `json:"readiness_band"`
	CategoryScores       []CategoryScore       `json:"category_scores"`
	RiskProfile          RiskProfile           `json:"risk_profile"`
	Recommendation       PathwayRecommendation `json:"recommendation"`
	AnsweredQuestions    int                   `json:"answered_questions"`
	TotalQuestions       int                   `json:"total_questions"`
	CompletionPercentage int                   `json:"completion_percentage"`
}

// readinessBands label the overall score for report headlines.
var readinessBands = []struct {
	min  int
	band string
}{
	{75, "ready"},
	{50, "developing"},
	{0, "foundational"},
}

func readinessBand(score int) string {
	for _, b := range readinessBands {
		if score >= b.min {
			return b.band
		}
	}
	return "foundational"
}
