package assessment

import (
	"math"

	"github.com/halcyonworks/compass/internal/catalog"
)

type categoryAccumulator struct {
	weightedSum float64
	maxPossible float64
	answered    int
	total       int
}

// scoreCategories groups the applicable questions by category and scores
// each group as achieved weighted points over the theoretical maximum. The
// maximum counts every question in the group, answered or not, so partial
// assessments read low rather than inflated.
func (e *Engine) scoreCategories(questions []catalog.Question, byQuestion map[string]Answer) []CategoryScore {
	accumulators := make(map[string]*categoryAccumulator)

	for _, q := range questions {
		acc := accumulators[q.Category]
		if acc == nil {
			acc = &categoryAccumulator{}
			accumulators[q.Category] = acc
		}

		acc.total++
		acc.maxPossible += maxOptionScore(q) * float64(q.Weight)

		answer, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		acc.answered++
		acc.weightedSum += rawScore(q, answer) * float64(q.Weight)
	}

	// Emit in category-table order for deterministic output.
	var scores []CategoryScore
	for _, cat := range e.catalog.Categories() {
		acc, ok := accumulators[cat.Name]
		if !ok {
			continue
		}

		score := 0
		if acc.maxPossible > 0 {
			score = int(math.Round(acc.weightedSum / acc.maxPossible * 100))
		}

		scores = append(scores, CategoryScore{
			Category: cat.Name,
			Label:    cat.Label,
			Score:    score,
			Weight:   cat.Weight,
			Answered: acc.answered,
			Total:    acc.total,
		})
	}
	return scores
}

// rawScore resolves an answer's selected values against the question's
// options. Multi-select answers fold through the configured aggregation
// strategy; everything else takes the first matched option. Values that
// match no option contribute nothing.
func rawScore(q catalog.Question, answer Answer) float64 {
	var scores []float64
	for _, value := range answer.selectedValues() {
		if opt, ok := optionByValue(q, value); ok {
			scores = append(scores, float64(opt.Score))
		}
	}
	if len(scores) == 0 {
		return 0
	}

	if q.Type == catalog.MultipleChoice {
		return aggregators[defaultStrategy](scores)
	}
	return scores[0]
}

func optionByValue(q catalog.Question, value string) (catalog.Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return catalog.Option{}, false
}

func maxOptionScore(q catalog.Question) float64 {
	best := 0.0
	for _, opt := range q.Options {
		if s := float64(opt.Score); s > best {
			best = s
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
