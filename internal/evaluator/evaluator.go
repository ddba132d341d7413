// Package evaluator provides the high-level orchestration of the candidate
// evaluation pipeline: extraction, aggregation, confidence estimation,
// decisioning, caching, and the escalation path to the high-fidelity
// verifier.
package evaluator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fitscore/internal/benchmark"
	"github.com/jonathan/fitscore/internal/cache"
	"github.com/jonathan/fitscore/internal/catalog"
	"github.com/jonathan/fitscore/internal/extraction"
	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/jonathan/fitscore/internal/verification"
)

// ErrMalformedInput marks a batch slot whose candidate text was empty or
// otherwise unusable.
var ErrMalformedInput = errors.New("malformed candidate input")

// defaultBatchWorkers bounds concurrent candidate evaluations in a batch.
const defaultBatchWorkers = 10

// Evaluator runs the fast evaluation pipeline. It is safe for concurrent use:
// the catalog and registry are read-only after construction and the cache is
// concurrency-safe.
type Evaluator struct {
	extractor *extraction.Extractor
	registry  *benchmark.Registry
	bands     scoring.Bands
	cache     *cache.ResultCache
	escalator *verification.Escalator
	logger    *zap.Logger
	workers   int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCache replaces the default result cache.
func WithCache(c *cache.ResultCache) Option {
	return func(e *Evaluator) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithEscalator enables verification escalation for borderline results.
func WithEscalator(esc *verification.Escalator) Option {
	return func(e *Evaluator) {
		if esc != nil {
			e.escalator = esc
		}
	}
}

// WithBands replaces the default decision banding.
func WithBands(b scoring.Bands) Option {
	return func(e *Evaluator) {
		e.bands = b
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBatchWorkers bounds batch concurrency.
func WithBatchWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an evaluator over the given catalog and benchmark registry.
// Without WithEscalator, fast results are final and never verified.
func New(cat *catalog.Catalog, reg *benchmark.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		extractor: extraction.New(cat),
		registry:  reg,
		bands:     scoring.DefaultBands(),
		cache:     cache.New(),
		logger:    zap.NewNop(),
		workers:   defaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.escalator == nil {
		e.escalator = verification.NewEscalator(nil, e.bands)
	}
	return e
}

// Evaluate scores one candidate. Malformed input yields a minimum-confidence
// NO_HIRE result rather than an error; unknown roles fall back to the default
// benchmark with the fallback flagged on the result.
//
// The per-fingerprint computation, including any verification escalation,
// runs at most once under concurrent access; repeated evaluations of the same
// (text, role) pair return the cached result unchanged.
func (e *Evaluator) Evaluate(ctx context.Context, input types.CandidateInput) (*types.EvaluationResult, error) {
	start := time.Now()

	if err := input.Validate(); err != nil {
		e.logger.Debug("malformed candidate input", zap.String("role", input.Role), zap.Error(err))
		return e.malformedResult(start), nil
	}

	bench, defaulted := e.registry.Resolve(input.Role)
	// The fingerprint keys on the requested role so a defaulted evaluation
	// never aliases a genuine one for the default role.
	fp := cache.FingerprintFor(input.Text, input.Role)

	result, err := e.cache.GetOrCompute(ctx, fp, func(ctx context.Context) (*types.EvaluationResult, error) {
		return e.compute(ctx, input, bench, defaulted, start)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// compute runs the sequential fast pipeline for one candidate and applies
// escalation to borderline results.
func (e *Evaluator) compute(ctx context.Context, input types.CandidateInput, bench types.RoleBenchmark, defaulted bool, start time.Time) (*types.EvaluationResult, error) {
	scores := e.extractor.Extract(input.Text, bench.Role)
	overall := scoring.Aggregate(scores, bench)
	confidence := scoring.EstimateConfidence(scores)
	decision := e.bands.Decide(overall, bench)
	strengths, concerns := scoring.BuildNarrative(scores)

	fast := &types.EvaluationResult{
		Overall:       overall,
		Dimensions:    scores,
		Confidence:    confidence,
		Decision:      decision,
		Strengths:     strengths,
		Concerns:      concerns,
		RoleDefaulted: defaulted,
	}

	final := e.escalator.MaybeVerify(ctx, input, fast, bench)
	final.ProcessingTime = time.Since(start)

	e.logger.Info("candidate evaluated",
		zap.String("role", bench.Role),
		zap.Bool("role_defaulted", defaulted),
		zap.Float64("overall", final.Overall),
		zap.String("decision", string(final.Decision)),
		zap.Float64("confidence", final.Confidence),
		zap.Bool("verified", final.Verified),
		zap.Duration("elapsed", final.ProcessingTime))
	return final, nil
}

// malformedResult builds the minimum-confidence NO_HIRE result returned for
// empty or unusable candidate text.
func (e *Evaluator) malformedResult(start time.Time) *types.EvaluationResult {
	scores := make(map[types.Dimension]types.DimensionScore, len(types.Dimensions()))
	for _, d := range types.Dimensions() {
		scores[d] = types.DimensionScore{Dimension: d}
	}
	return &types.EvaluationResult{
		Overall:        types.MinScore,
		Dimensions:     scores,
		Confidence:     scoring.EstimateConfidence(scores),
		Decision:       types.DecisionNoHire,
		Concerns:       []string{"No evaluable candidate text provided"},
		ProcessingTime: time.Since(start),
	}
}

// CacheStats exposes the result cache counters.
func (e *Evaluator) CacheStats() cache.Stats {
	return e.cache.Stats()
}
