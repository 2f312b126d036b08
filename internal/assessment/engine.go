package assessment

import (
	"math"

	"github.com/halcyonworks/compass/internal/catalog"
)

// Engine scores assessments against one validated catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine bound to a catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Score computes the full readiness result for an answer set. It is a
// total function: any answer list, including an empty one, produces a
// well-formed result with every score inside [0, 100].
func (e *Engine) Score(answers []Answer) AssessmentScores {
	byQuestion := Normalize(answers)
	active := e.applicableFollowUps(byQuestion)
	questions := e.questionnaire(active)

	categoryScores := e.scoreCategories(questions, byQuestion)

	var weightedSum, weightTotal float64
	answered := 0
	for _, cs := range categoryScores {
		weightedSum += float64(cs.Score) * cs.Weight
		weightTotal += cs.Weight
		answered += cs.Answered
	}

	overall := 0
	if weightTotal > 0 {
		overall = int(math.Round(weightedSum / weightTotal))
	}

	completion := 0
	if len(questions) > 0 {
		completion = int(math.Round(float64(answered) / float64(len(questions)) * 100))
	}

	risk := e.assessRisk(byQuestion)

	return AssessmentScores{
		OverallScore:         overall,
		ReadinessBand:        readinessBand(overall),
		CategoryScores:       categoryScores,
		RiskProfile:          risk,
		Recommendation:       e.recommend(overall, categoryScores, risk),
		AnsweredQuestions:    answered,
		TotalQuestions:       len(questions),
		CompletionPercentage: completion,
	}
}

// Progress reports how many applicable questions have answers. The total
// moves as answers trigger or untrigger follow-ups.
func (e *Engine) Progress(answers []Answer) (answered, total int) {
	byQuestion := Normalize(answers)
	questions := e.questionnaire(e.applicableFollowUps(byQuestion))

	for _, q := range questions {
		if _, ok := byQuestion[q.ID]; ok {
			answered++
		}
	}
	return answered, len(questions)
}

// Complete reports whether every applicable question has an answer.
func (e *Engine) Complete(answers []Answer) bool {
	answered, total := e.Progress(answers)
	return answered == total
}

// NextQuestion returns the first unanswered applicable question in
// presentation order, or nil when the assessment is complete. Follow-ups
// appear immediately after the parent answer that triggered them and
// disappear when that answer changes.
func (e *Engine) NextQuestion(answers []Answer) *catalog.Question {
	byQuestion := Normalize(answers)
	questions := e.questionnaire(e.applicableFollowUps(byQuestion))

	for _, q := range questions {
		if _, ok := byQuestion[q.ID]; !ok {
			next := q
			return &next
		}
	}
	return nil
}
