// Package scoring combines dimension sub-scores into an overall score,
// estimates result confidence, and maps scores to hire decisions.
package scoring

import (
	"github.com/jonathan/fitscore/internal/types"
)

// Aggregate computes the overall score as the weighted sum of dimension
// scores, clamped to [0,10]. The returned value keeps full precision;
// rounding to one decimal is a presentation concern only, so threshold
// comparisons never flap between the presented and the decided value.
func Aggregate(scores map[types.Dimension]types.DimensionScore, bench types.RoleBenchmark) float64 {
	overall := 0.0
	for _, d := range types.Dimensions() {
		if s, ok := scores[d]; ok {
			overall += s.Value * bench.Weight(d)
		}
	}
	if overall < types.MinScore {
		return types.MinScore
	}
	if overall > types.MaxScore {
		return types.MaxScore
	}
	return overall
}
