package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fitscore/internal/types"
)

// EvaluateBatch evaluates many candidates concurrently for one role. The
// returned slots are in input order regardless of completion order, and one
// item's failure never aborts the batch: its slot carries the error while the
// others proceed.
func (e *Evaluator) EvaluateBatch(ctx context.Context, items []types.BatchItem, role string) []types.BatchResult {
	start := time.Now()
	results := make([]types.BatchResult, len(items))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, item := range items {
		g.Go(func() error {
			id := item.ID
			if id == "" {
				id = uuid.NewString()
			}
			results[i].ID = id

			input := types.CandidateInput{Text: item.Text, Role: role}
			if err := input.Validate(); err != nil {
				results[i].Err = fmt.Errorf("%w: %v", ErrMalformedInput, err)
				return nil
			}

			result, err := e.Evaluate(ctx, input)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result = result
			return nil
		})
	}
	// Workers report failures through their slot, never through the group.
	_ = g.Wait()

	e.logger.Info("batch evaluated",
		zap.String("role", role),
		zap.Int("candidates", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return results
}
