package assessment

import (
	"math"
	"sort"
	"strings"

	"github.com/halcyonworks/compass/internal/catalog"
)

// riskWeights discount the overall score before threshold checks.
var riskWeights = map[catalog.RiskLevel]float64{
	catalog.RiskLow:      1.0,
	catalog.RiskMedium:   0.85,
	catalog.RiskHigh:     0.7,
	catalog.RiskCritical: 0.5,
}

// pathwayThresholds pick the pathway from the risk-adjusted score, checked
// top down.
var pathwayThresholds = []struct {
	min     int
	pathway catalog.Pathway
}{
	{75, catalog.PathwayAccelerated},
	{50, catalog.PathwayStandard},
	{0, catalog.PathwayExtended},
}

var pathwayDurations = map[catalog.Pathway]string{
	catalog.PathwayAccelerated: "6-8 weeks",
	catalog.PathwayStandard:    "10-14 weeks",
	catalog.PathwayExtended:    "16-24 weeks",
}

var pathwayRationales = map[catalog.Pathway]string{
	catalog.PathwayAccelerated: "strong readiness across categories supports an accelerated engagement",
	catalog.PathwayStandard:    "solid foundations with addressable gaps fit the standard engagement arc",
	catalog.PathwayExtended:    "material readiness gaps call for an extended runway",
}

const criticalRiskRationale = "critical risk factors require extended timeline"

// focusAreaCutoff is the category score under which a category qualifies
// as a focus area.
const focusAreaCutoff = 60

// maxFocusAreas caps how many weak categories the recommendation calls out.
const maxFocusAreas = 2

// Recommend maps an overall score, its category breakdown, and the risk
// profile onto an engagement pathway.
func (e *Engine) Recommend(overall int, categoryScores []CategoryScore, risk RiskProfile) PathwayRecommendation {
	return e.recommend(overall, categoryScores, risk)
}

func (e *Engine) recommend(overall int, categoryScores []CategoryScore, risk RiskProfile) PathwayRecommendation {
	weight, ok := riskWeights[risk.Level]
	if !ok {
		weight = 1.0
	}
	adjusted := int(math.Round(float64(overall) * weight))

	var pathway catalog.Pathway
	var rationale string
	if risk.Level == catalog.RiskCritical {
		pathway = catalog.PathwayExtended
		rationale = criticalRiskRationale
	} else {
		for _, t := range pathwayThresholds {
			if adjusted >= t.min {
				pathway = t.pathway
				rationale = pathwayRationales[t.pathway]
				break
			}
		}
	}

	focusNames, focusLabels := focusAreas(categoryScores)
	if pathway != catalog.PathwayAccelerated && len(focusLabels) > 0 {
		rationale += "; focus areas: " + strings.Join(focusLabels, ", ")
	}

	program, _ := e.catalog.ProgramFor(pathway)

	return PathwayRecommendation{
		Pathway:           pathway,
		SuggestedProgram:  program,
		Confidence:        confidence(categoryScores),
		Rationale:         rationale,
		EstimatedDuration: pathwayDurations[pathway],
		FocusAreas:        focusNames,
	}
}

// focusAreas picks the lowest-scoring categories under the cutoff,
// ascending by score with the category name breaking ties.
func focusAreas(categoryScores []CategoryScore) (names, labels []string) {
	weak := make([]CategoryScore, 0, len(categoryScores))
	for _, cs := range categoryScores {
		if cs.Score < focusAreaCutoff {
			weak = append(weak, cs)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Score != weak[j].Score {
			return weak[i].Score < weak[j].Score
		}
		return weak[i].Category < weak[j].Category
	})

	names = []string{}
	labels = []string{}
	for i, cs := range weak {
		if i == maxFocusAreas {
			break
		}
		names = append(names, cs.Category)
		label := cs.Label
		if label == "" {
			label = cs.Category
		}
		labels = append(labels, label)
	}
	return names, labels
}

// confidence spreads with category agreement: tightly clustered category
// scores read confident, divergent ones do not.
func confidence(categoryScores []CategoryScore) int {
	if len(categoryScores) == 0 {
		return 0
	}

	mean := 0.0
	for _, cs := range categoryScores {
		mean += float64(cs.Score)
	}
	mean /= float64(len(categoryScores))

	variance := 0.0
	for _, cs := range categoryScores {
		d := float64(cs.Score) - mean
		variance += d * d
	}
	variance /= float64(len(categoryScores))

	return int(math.Round(clamp(100-2*math.Sqrt(variance), 0, 100)))
}
