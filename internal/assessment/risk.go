package assessment

import (
	"fmt"

	"github.com/halcyonworks/compass/internal/catalog"
)

// highFactorThreshold is the number of high-risk selections at which the
// level escalates from medium to high. Any critical selection escalates to
// critical regardless of count.
const highFactorThreshold = 3

// AssessRisk derives the risk profile from an answer set.
func (e *Engine) AssessRisk(answers []Answer) RiskProfile {
	return e.assessRisk(Normalize(answers))
}

// assessRisk scans every answered option, base and follow-up alike, in
// catalog order so the factor list is deterministic.
func (e *Engine) assessRisk(byQuestion map[string]Answer) RiskProfile {
	factors := []string{}
	highs, criticals := 0, 0

	scan := func(q catalog.Question) {
		answer, ok := byQuestion[q.ID]
		if !ok {
			return
		}
		for _, value := range answer.selectedValues() {
			opt, ok := optionByValue(q, value)
			if !ok {
				continue
			}
			switch opt.Risk {
			case catalog.RiskHigh:
				highs++
				factors = append(factors, fmt.Sprintf("%s: %s", q.Category, opt.Label))
			case catalog.RiskCritical:
				criticals++
				factors = append(factors, fmt.Sprintf("CRITICAL: %s: %s", q.Category, opt.Label))
			}
		}
	}

	for _, q := range e.catalog.Questions() {
		scan(q)
	}
	for _, f := range e.catalog.FollowUps() {
		scan(f.Question)
	}

	level := catalog.RiskLow
	switch {
	case criticals > 0:
		level = catalog.RiskCritical
	case highs >= highFactorThreshold:
		level = catalog.RiskHigh
	case highs >= 1:
		level = catalog.RiskMedium
	}

	return RiskProfile{Level: level, Factors: factors}
}
