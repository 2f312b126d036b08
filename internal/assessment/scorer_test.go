package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/compass/internal/catalog"
)

// testCatalog is a small bank with round numbers so expected scores can be
// worked out by hand. Alpha carries twice beta's aggregation weight.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(catalog.Data{
		Categories: []catalog.Category{
			{Name: "alpha", Label: "Alpha", Weight: 2.0},
			{Name: "beta", Label: "Beta", Weight: 1.0},
		},
		Questions: []catalog.Question{
			{
				ID:       "QA-01",
				Text:     "Alpha single choice",
				Type:     catalog.SingleChoice,
				Category: "alpha",
				Weight:   2,
				Options: []catalog.Option{
					{ID: "QA-01-A", Label: "Good", Value: "good", Score: 100},
					{ID: "QA-01-B", Label: "Mid", Value: "mid", Score: 50},
					{ID: "QA-01-C", Label: "Bad", Value: "bad", Score: 0, Risk: catalog.RiskHigh, TriggersFollowUp: []string{"FA-01"}},
					{ID: "QA-01-D", Label: "Terrible", Value: "terrible", Score: 0, Risk: catalog.RiskCritical},
				},
			},
			{
				ID:       "QA-02",
				Text:     "Alpha multi select",
				Type:     catalog.MultipleChoice,
				Category: "alpha",
				Weight:   1,
				Options: []catalog.Option{
					{ID: "QA-02-A", Label: "Checks", Value: "a", Score: 80},
					{ID: "QA-02-B", Label: "Owners", Value: "b", Score: 40},
					{ID: "QA-02-C", Label: "Catalog", Value: "c", Score: 20},
					{ID: "QA-02-D", Label: "Nothing", Value: "none", Score: 0, Risk: catalog.RiskHigh},
				},
			},
			{
				ID:       "QB-01",
				Text:     "Beta single choice",
				Type:     catalog.SingleChoice,
				Category: "beta",
				Weight:   1,
				Options: []catalog.Option{
					{ID: "QB-01-A", Label: "Yes", Value: "yes", Score: 100},
					{ID: "QB-01-B", Label: "No", Value: "no", Score: 0, Risk: catalog.RiskHigh},
				},
			},
			{
				ID:       "QB-02",
				Text:     "Beta notes",
				Type:     catalog.FreeText,
				Category: "beta",
				Weight:   3,
			},
		},
		FollowUps: []catalog.FollowUpQuestion{
			{
				Question: catalog.Question{
					ID:       "FA-01",
					Text:     "Alpha follow-up",
					Type:     catalog.SingleChoice,
					Category: "alpha",
					Weight:   2,
					Options: []catalog.Option{
						{ID: "FA-01-A", Label: "Recoverable", Value: "ok", Score: 50},
						{ID: "FA-01-B", Label: "Stuck", Value: "not", Score: 0, Risk: catalog.RiskHigh},
					},
				},
				ParentID:         "QA-01",
				TriggerValue:     "bad",
				ImpactMultiplier: 1.0,
			},
		},
		Templates: []catalog.ArtifactTemplate{{ID: "TPL-01", Name: "Brief"}},
		Stations: []catalog.StationRequirement{
			{StationID: "S-01", Name: "Synthesis", RequiredArtifacts: []string{"TPL-01"}, OutputArtifacts: []string{"TPL-01"}},
		},
		Programs: map[catalog.Program][]catalog.WorkflowStage{
			catalog.ProgramROIAudit: {
				{Sequence: 1, Name: "Intake", Stations: []string{}, RequiredArtifacts: []string{}, OutputArtifacts: []string{"TPL-01"}},
				{Sequence: 2, Name: "Discovery", Stations: []string{"S-01"}, RequiredArtifacts: []string{"TPL-01"}, OutputArtifacts: []string{}},
			},
		},
		ProgramForPathway: map[catalog.Pathway]catalog.Program{
			catalog.PathwayAccelerated: catalog.ProgramROIAudit,
			catalog.PathwayStandard:    catalog.ProgramROIAudit,
			catalog.PathwayExtended:    catalog.ProgramROIAudit,
		},
	})
	require.NoError(t, err)
	return c
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testCatalog(t))
}

func TestScoreFullAssessment(t *testing.T) {
	e := testEngine(t)

	scores := e.Score([]Answer{
		{QuestionID: "QA-01", Value: "good"},
		{QuestionID: "QA-02", Values: []string{"a", "b"}},
		{QuestionID: "QB-01", Value: "yes"},
		{QuestionID: "QB-02", Value: "two prior automation pilots"},
	})

	// alpha: (100*2 + 60*1) / (100*2 + 80*1) = 260/280 -> 93
	// beta:  (100*1 + 0) / (100*1 + 0)       = 100
	require.Len(t, scores.CategoryScores, 2)
	assert.Equal(t, 93, scores.CategoryScores[0].Score)
	assert.Equal(t, 100, scores.CategoryScores[1].Score)

	// overall: (93*2 + 100*1) / 3 -> 95
	assert.Equal(t, 95, scores.OverallScore)
	assert.Equal(t, "ready", scores.ReadinessBand)

	assert.Equal(t, 4, scores.AnsweredQuestions)
	assert.Equal(t, 4, scores.TotalQuestions)
	assert.Equal(t, 100, scores.CompletionPercentage)

	assert.Equal(t, catalog.RiskLow, scores.RiskProfile.Level)
	assert.Empty(t, scores.RiskProfile.Factors)

	assert.Equal(t, catalog.PathwayAccelerated, scores.Recommendation.Pathway)
	assert.Equal(t, "6-8 weeks", scores.Recommendation.EstimatedDuration)
}

func TestScorePartialAssessmentPenalizesUnanswered(t *testing.T) {
	e := testEngine(t)

	scores := e.Score([]Answer{
		{QuestionID: "QA-01", Value: "good"},
	})

	// alpha: 200/280 -> 71; beta unanswered -> 0 but still weighted.
	require.Len(t, scores.CategoryScores, 2)
	assert.Equal(t, 71, scores.CategoryScores[0].Score)
	assert.Equal(t, 0, scores.CategoryScores[1].Score)

	// overall: (71*2 + 0*1) / 3 -> 47
	assert.Equal(t, 47, scores.OverallScore)
	assert.Equal(t, 1, scores.AnsweredQuestions)
	assert.Equal(t, 4, scores.TotalQuestions)
	assert.Equal(t, 25, scores.CompletionPercentage)
}

func TestScoreEmptyAnswersIsZeroNotNaN(t *testing.T) {
	e := testEngine(t)

	scores := e.Score(nil)

	assert.Equal(t, 0, scores.OverallScore)
	assert.Equal(t, 0, scores.AnsweredQuestions)
	assert.Equal(t, 4, scores.TotalQuestions)
	assert.Equal(t, 0, scores.CompletionPercentage)
	for _, cs := range scores.CategoryScores {
		assert.Equal(t, 0, cs.Score)
	}
}

func TestScoreIgnoresUnknownQuestionIDs(t *testing.T) {
	e := testEngine(t)

	with := e.Score([]Answer{
		{QuestionID: "QA-01", Value: "good"},
		{QuestionID: "X-99", Value: "whatever"},
	})
	without := e.Score([]Answer{
		{QuestionID: "QA-01", Value: "good"},
	})

	assert.Equal(t, without, with)
}

func TestScoreDuplicateAnswersLatestWins(t *testing.T) {
	e := testEngine(t)
	earlier := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	scores := e.Score([]Answer{
		{QuestionID: "QA-01", Value: "bad", AnsweredAt: later},
		{QuestionID: "QA-01", Value: "good", AnsweredAt: earlier},
	})

	// The later answer selects "bad", so the follow-up applies and the raw
	// alpha contribution is zero.
	assert.Equal(t, 5, scores.TotalQuestions)
	assert.Equal(t, 0, scores.CategoryScores[0].Score)
}

func TestScoreMultiSelectAveragesSelectedOptions(t *testing.T) {
	e := testEngine(t)

	// Raw multi-select score is the mean of selected option scores; the
	// alpha maximum stays 280, so [a]=80 -> 29, [a,c]=50 -> 18,
	// [a,b,c]=46.67 -> 17.
	tests := []struct {
		name      string
		values    []string
		wantAlpha int
	}{
		{name: "single selection", values: []string{"a"}, wantAlpha: 29},
		{name: "two selections", values: []string{"a", "c"}, wantAlpha: 18},
		{name: "all three", values: []string{"a", "b", "c"}, wantAlpha: 17},
		{name: "unmatched values ignored", values: []string{"zzz"}, wantAlpha: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := e.Score([]Answer{{QuestionID: "QA-02", Values: tt.values}})
			assert.Equal(t, tt.wantAlpha, scores.CategoryScores[0].Score)
		})
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	e := testEngine(t)
	answers := []Answer{
		{QuestionID: "QA-01", Value: "mid"},
		{QuestionID: "QA-02", Values: []string{"a", "none"}},
		{QuestionID: "QB-01", Value: "no"},
	}

	first := e.Score(answers)
	second := e.Score(answers)

	assert.Equal(t, first, second)
}

func TestScoreBoundsHoldAcrossAnswerSets(t *testing.T) {
	e := testEngine(t)

	answerSets := [][]Answer{
		nil,
		{{QuestionID: "QA-01", Value: "terrible"}},
		{{QuestionID: "QA-01", Value: "bad"}, {QuestionID: "FA-01", Value: "not"}},
		{{QuestionID: "QA-02", Values: []string{"none"}}},
		{
			{QuestionID: "QA-01", Value: "good"},
			{QuestionID: "QA-02", Values: []string{"a", "b", "c", "none"}},
			{QuestionID: "QB-01", Value: "yes"},
			{QuestionID: "QB-02", Value: "notes"},
		},
		{{QuestionID: "QB-02", Number: floatPtr(12)}},
	}

	for _, answers := range answerSets {
		scores := e.Score(answers)

		assert.GreaterOrEqual(t, scores.OverallScore, 0)
		assert.LessOrEqual(t, scores.OverallScore, 100)
		assert.GreaterOrEqual(t, scores.CompletionPercentage, 0)
		assert.LessOrEqual(t, scores.CompletionPercentage, 100)
		for _, cs := range scores.CategoryScores {
			assert.GreaterOrEqual(t, cs.Score, 0)
			assert.LessOrEqual(t, cs.Score, 100)
		}
		assert.GreaterOrEqual(t, scores.Recommendation.Confidence, 0)
		assert.LessOrEqual(t, scores.Recommendation.Confidence, 100)
	}
}

func TestScoreAnsweredCountNeverDropsWhenAnswering(t *testing.T) {
	e := testEngine(t)

	base := []Answer{{QuestionID: "QA-01", Value: "mid"}}
	more := append([]Answer{}, base...)
	more = append(more, Answer{QuestionID: "QB-01", Value: "yes"})

	first := e.Score(base)
	second := e.Score(more)

	assert.GreaterOrEqual(t, second.AnsweredQuestions, first.AnsweredQuestions)
}

func TestDefaultCatalogScoresStayInBounds(t *testing.T) {
	e := NewEngine(catalog.Default())

	scores := e.Score([]Answer{
		{QuestionID: "Q-01", Value: "customer_demand"},
		{QuestionID: "Q-02", Value: "4"},
		{QuestionID: "Q-04", Value: "central_warehouse"},
		{QuestionID: "Q-05", Values: []string{"quality_checks", "lineage"}},
		{QuestionID: "Q-11", Number: floatPtr(7)},
	})

	assert.GreaterOrEqual(t, scores.OverallScore, 0)
	assert.LessOrEqual(t, scores.OverallScore, 100)
	assert.Equal(t, 5, scores.AnsweredQuestions)
	assert.Equal(t, len(catalog.Default().Questions()), scores.TotalQuestions)
}

func floatPtr(f float64) *float64 {
	return &f
}
