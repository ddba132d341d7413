package scoring

import (
	"math"

	"github.com/jonathan/fitscore/internal/types"
)

// Confidence model constants. Confidence grows with signal coverage and
// shrinks with disagreement between dimensions: a profile scored consistently
// across categories is more trustworthy than one carried by a single outlier.
const (
	// floorConfidence is returned for profiles with zero matched signals.
	// A profile the catalog saw nothing in must never look trustworthy.
	floorConfidence = 5.0
	ceilConfidence  = 95.0

	baseConfidence      = 40.0
	perSignalConfidence = 5.0
	maxCoverageBonus    = 35.0

	maxAgreementBonus = 20.0
	// agreementPenaltyScale converts the standard deviation between dimension
	// scores into lost agreement bonus; a spread of 4 points erases it.
	agreementPenaltyScale = 5.0
)

// EstimateConfidence derives a reliability percentage from the dimension
// scores. The result is always within [0,100].
func EstimateConfidence(scores map[types.Dimension]types.DimensionScore) float64 {
	matches := 0
	for _, s := range scores {
		matches += len(s.Signals)
	}
	if matches == 0 {
		return floorConfidence
	}

	coverage := float64(matches) * perSignalConfidence
	if coverage > maxCoverageBonus {
		coverage = maxCoverageBonus
	}

	agreement := maxAgreementBonus - dimensionSpread(scores)*agreementPenaltyScale
	if agreement < 0 {
		agreement = 0
	}

	confidence := baseConfidence + coverage + agreement
	if confidence < floorConfidence {
		return floorConfidence
	}
	if confidence > ceilConfidence {
		return ceilConfidence
	}
	return confidence
}

// dimensionSpread returns the population standard deviation of the four
// dimension score values.
func dimensionSpread(scores map[types.Dimension]types.DimensionScore) float64 {
	dims := types.Dimensions()
	mean := 0.0
	for _, d := range dims {
		mean += scores[d].Value
	}
	mean /= float64(len(dims))

	variance := 0.0
	for _, d := range dims {
		diff := scores[d].Value - mean
		variance += diff * diff
	}
	variance /= float64(len(dims))
	return math.Sqrt(variance)
}
