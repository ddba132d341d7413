package verification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
)

// Escalation defaults.
const (
	// DefaultTolerance is the score divergence beyond which the external
	// verdict is authoritative for borderline cases.
	DefaultTolerance = 1.0
	// DefaultTimeout bounds a single verification call.
	DefaultTimeout = 15 * time.Second

	// confidenceBoost reflects corroboration; confidencePenalty reflects an
	// unverified borderline result.
	confidenceBoost   = 15.0
	confidencePenalty = 15.0
	boostCeiling      = 95.0
	penaltyFloor      = 5.0
)

// Escalator invokes the verifier for borderline fast results and merges the
// verdict into the final result. Escalation failure never aborts an
// evaluation: the fast result survives with lowered confidence.
type Escalator struct {
	verifier  Verifier
	bands     scoring.Bands
	tolerance float64
	timeout   time.Duration
	logger    *zap.Logger
}

// EscalatorOption configures an Escalator.
type EscalatorOption func(*Escalator)

// WithTolerance sets the divergence tolerance.
func WithTolerance(t float64) EscalatorOption {
	return func(e *Escalator) {
		if t > 0 {
			e.tolerance = t
		}
	}
}

// WithTimeout sets the per-call verification timeout.
func WithTimeout(d time.Duration) EscalatorOption {
	return func(e *Escalator) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) EscalatorOption {
	return func(e *Escalator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEscalator creates an escalator. A nil verifier disables escalation
// entirely; fast results pass through untouched.
func NewEscalator(verifier Verifier, bands scoring.Bands, opts ...EscalatorOption) *Escalator {
	e := &Escalator{
		verifier:  verifier,
		bands:     bands,
		tolerance: DefaultTolerance,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaybeVerify returns the final result for a fast evaluation. Verification is
// invoked only when the fast result is borderline: overall within the margin
// of the hire threshold, or confidence below the floor.
func (e *Escalator) MaybeVerify(ctx context.Context, input types.CandidateInput, fast *types.EvaluationResult, bench types.RoleBenchmark) *types.EvaluationResult {
	if e.verifier == nil || !e.bands.Borderline(fast.Overall, fast.Confidence, bench) {
		return fast
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	verdict, err := e.verifier.Verify(callCtx, input.Text, input.Role, fast)
	if err != nil {
		// Unavailable and timed-out verifiers are handled identically: keep
		// the fast result, mark it unverified, and lower confidence.
		e.logger.Warn("verification failed, keeping fast result",
			zap.String("role", input.Role),
			zap.Float64("overall", fast.Overall),
			zap.Error(err))
		out := fast.Clone()
		out.Verified = false
		out.Confidence = lower(out.Confidence)
		return out
	}

	out := fast.Clone()
	diverged := abs(verdict.Score-fast.Overall) > e.tolerance
	if diverged {
		// The external score is authoritative for borderline cases.
		out.Overall = verdict.Score
		out.Decision = e.bands.Decide(verdict.Score, bench)
	}
	out.Verified = true
	out.Confidence = boost(out.Confidence)
	out.Rationale = verdict.Rationale

	e.logger.Info("verification merged",
		zap.String("role", input.Role),
		zap.Float64("fast_overall", fast.Overall),
		zap.Float64("verified_overall", out.Overall),
		zap.Bool("diverged", diverged))
	return out
}

func boost(confidence float64) float64 {
	confidence += confidenceBoost
	if confidence > boostCeiling {
		return boostCeiling
	}
	return confidence
}

func lower(confidence float64) float64 {
	confidence -= confidencePenalty
	if confidence < penaltyFloor {
		return penaltyFloor
	}
	return confidence
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
