package assessment

// aggregator folds the option scores of a multi-select answer into one raw
// score.
type aggregator func(scores []float64) float64

// aggregators is keyed by strategy name so switching the multi-select fold
// is a table change, not a code change.
var aggregators = map[string]aggregator{
	"mean": aggregateMean,
}

// defaultStrategy is the fold applied to multiple-choice answers.
const defaultStrategy = "mean"

func aggregateMean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
