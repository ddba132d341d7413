package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/types"
)

func TestEvaluateBatch_OrderPreserved(t *testing.T) {
	e := newEvaluator(t)

	items := []types.BatchItem{
		{ID: "a", Text: eliteProfile},
		{ID: "b", Text: "Developer with a bachelor degree"},
		{ID: "c", Text: "   "},
		{ID: "d", Text: "Data analyst, 6 years of experience"},
		{ID: "e", Text: eliteProfile},
	}

	results := e.EvaluateBatch(context.Background(), items, "software_engineer")
	require.Len(t, results, 5)

	// Slots stay in input order regardless of completion order.
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, want, results[i].ID)
	}

	// The malformed candidate occupies its slot as an error without
	// aborting the batch.
	require.Error(t, results[2].Err)
	assert.ErrorIs(t, results[2].Err, ErrMalformedInput)
	assert.Nil(t, results[2].Result)

	for _, i := range []int{0, 1, 3, 4} {
		assert.NoError(t, results[i].Err, "slot %d", i)
		require.NotNil(t, results[i].Result, "slot %d", i)
	}

	// Duplicate texts share the cached evaluation.
	assert.Equal(t, results[0].Result.Overall, results[4].Result.Overall)
}

func TestEvaluateBatch_GeneratesMissingIdentifiers(t *testing.T) {
	e := newEvaluator(t)

	results := e.EvaluateBatch(context.Background(), []types.BatchItem{
		{Text: "Engineer at Google"},
		{Text: "Engineer at Stripe"},
	}, "software_engineer")
	require.Len(t, results, 2)

	assert.NotEmpty(t, results[0].ID)
	assert.NotEmpty(t, results[1].ID)
	assert.NotEqual(t, results[0].ID, results[1].ID)
}

func TestEvaluateBatch_Empty(t *testing.T) {
	e := newEvaluator(t)
	results := e.EvaluateBatch(context.Background(), nil, "software_engineer")
	assert.Empty(t, results)
}

func TestEvaluateBatch_WorkerLimitStillCompletesAll(t *testing.T) {
	e := newEvaluator(t, WithBatchWorkers(2))

	items := make([]types.BatchItem, 25)
	for i := range items {
		items[i] = types.BatchItem{Text: "Engineer with Python and Go"}
	}

	results := e.EvaluateBatch(context.Background(), items, "software_engineer")
	require.Len(t, results, 25)
	for i, r := range results {
		assert.NoError(t, r.Err, "slot %d", i)
		assert.NotNil(t, r.Result, "slot %d", i)
	}
}
