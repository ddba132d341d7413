package scoring

import (
	"math"

	"github.com/jonathan/fitscore/internal/types"
)

// Bands configures the decision banding below the hire threshold and the
// borderline predicate used to trigger verification. The offsets are
// configurable so role customization in the benchmark registry propagates
// without code changes.
type Bands struct {
	// StrongMaybeOffset and MaybeOffset are subtracted from the resolved
	// hire threshold to form the STRONG_MAYBE and MAYBE bands.
	StrongMaybeOffset float64
	MaybeOffset       float64
	// BorderlineMargin is the half-width of the band around the hire
	// threshold inside which a fast result is considered borderline.
	BorderlineMargin float64
	// ConfidenceFloor: fast results below this confidence are borderline
	// regardless of score.
	ConfidenceFloor float64
}

// DefaultBands returns the default decision banding.
func DefaultBands() Bands {
	return Bands{
		StrongMaybeOffset: 1.0,
		MaybeOffset:       2.0,
		BorderlineMargin:  0.5,
		ConfidenceFloor:   70.0,
	}
}

// Decide maps an overall score to a hire decision against the resolved
// benchmark. The rules are evaluated in order; reaching the hire threshold
// exactly is a HIRE.
func (b Bands) Decide(overall float64, bench types.RoleBenchmark) types.HireDecision {
	switch {
	case overall >= bench.EliteThreshold:
		return types.DecisionHire
	case overall >= bench.HireThreshold:
		return types.DecisionHire
	case overall >= bench.HireThreshold-b.StrongMaybeOffset:
		return types.DecisionStrongMaybe
	case overall >= bench.HireThreshold-b.MaybeOffset:
		return types.DecisionMaybe
	default:
		return types.DecisionNoHire
	}
}

// Borderline reports whether a fast result should be escalated to the
// high-fidelity verifier: the overall score sits within the margin around the
// hire threshold, or confidence fell below the floor.
func (b Bands) Borderline(overall, confidence float64, bench types.RoleBenchmark) bool {
	if math.Abs(overall-bench.HireThreshold) <= b.BorderlineMargin {
		return true
	}
	return confidence < b.ConfidenceFloor
}
