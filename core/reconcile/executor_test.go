package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExecute_EmptyPlanSkipsTransaction(t *testing.T) {
	store := newMemStore()
	exec := NewExecutor(store, NewRateResolver(newCountingRates(nil)), zap.NewNop())

	result, err := exec.Execute(context.Background(), BuildPlan(NewCandidateSet(nil), nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, store.txCount)
	assert.Empty(t, result.Inserted)
	assert.Empty(t, result.Updated)
}

func TestExecute_SequenceOnlyChangeKeepsLocalAmount(t *testing.T) {
	store := newMemStore(order(1, 10, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-01": "95"})
	exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

	set := NewCandidateSet([]Candidate{candidate(7, 10, "10", "2024-01-01")})
	current, _ := store.get(10)
	plan := BuildPlan(set, []int64{10}, map[int64]Order{10: current})

	result, err := exec.Execute(context.Background(), plan)
	require.NoError(t, err)

	got, _ := store.get(10)
	assert.Equal(t, int64(7), got.SequenceNumber)
	assert.Equal(t, "900", got.LocalAmount.String())
	assert.Equal(t, 0, rates.total())
	assert.Len(t, result.Updated, 1)
}

func TestExecute_LocalAmountRoundedToScale(t *testing.T) {
	store := newMemStore(order(1, 10, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-01": "90.1234567"})
	exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

	set := NewCandidateSet([]Candidate{
		candidate(1, 10, "10.12346", "2024-01-01"),
		candidate(2, 11, "10.12346", "2024-01-01"),
	})
	current, _ := store.get(10)
	plan := BuildPlan(set, []int64{10}, map[int64]Order{10: current})

	result, err := exec.Execute(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Updated, 1)
	require.Len(t, result.Inserted, 1)
	assert.Equal(t, "912.36121", result.Updated[0].LocalAmount.String())
	assert.Equal(t, "912.36121", result.Inserted[0].LocalAmount.String())

	got, _ := store.get(11)
	assert.Equal(t, result.Inserted[0], got)
}

func TestExecute_RateFailureRollsBackEveryPhase(t *testing.T) {
	store := newMemStore(
		order(1, 1, "10", "2024-01-01", "900"),
		order(2, 2, "20", "2024-01-01", "1800"),
	)
	// 2024-01-05 has no quotation.
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-01-02": "91"})
	exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

	set := NewCandidateSet([]Candidate{
		candidate(1, 2, "25", "2024-01-02"),
		candidate(2, 3, "5", "2024-01-05"),
	})
	current, _ := store.get(2)
	plan := BuildPlan(set, []int64{1, 2}, map[int64]Order{2: current})
	require.Equal(t, []int64{1}, plan.ToDelete)

	result, err := exec.Execute(context.Background(), plan)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRateUnavailable)

	assert.Equal(t, 2, store.len())
	kept, ok := store.get(1)
	require.True(t, ok, "delete phase rolled back")
	assert.Equal(t, "900", kept.LocalAmount.String())
	untouched, _ := store.get(2)
	assert.Equal(t, "20", untouched.ForeignAmount.String(), "update phase rolled back")
	_, inserted := store.get(3)
	assert.False(t, inserted)
}

func TestExecute_StoreErrors(t *testing.T) {
	rates := newCountingRates(map[string]string{"2024-01-01": "90"})
	set := NewCandidateSet([]Candidate{candidate(1, 1, "1", "2024-01-01")})

	t.Run("insert failure", func(t *testing.T) {
		store := newMemStore()
		store.insertErr = errors.New("duplicate key")
		exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

		_, err := exec.Execute(context.Background(), BuildPlan(set, nil, nil))

		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "insert", storeErr.Op)
		assert.Equal(t, 0, store.len())
	})

	t.Run("commit failure", func(t *testing.T) {
		store := newMemStore()
		store.commitErr = errors.New("deadlock")
		exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

		_, err := exec.Execute(context.Background(), BuildPlan(set, nil, nil))

		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "commit", storeErr.Op)
		assert.Equal(t, 0, store.len())
	})
}

func TestExecute_InsertionOrderFollowsSheet(t *testing.T) {
	store := newMemStore()
	rates := newCountingRates(map[string]string{"2024-01-01": "90"})
	exec := NewExecutor(store, NewRateResolver(rates), zap.NewNop())

	set := NewCandidateSet([]Candidate{
		candidate(1, 30, "1", "2024-01-01"),
		candidate(2, 10, "1", "2024-01-01"),
		candidate(3, 20, "1", "2024-01-01"),
	})
	result, err := exec.Execute(context.Background(), BuildPlan(set, nil, nil))
	require.NoError(t, err)

	require.Len(t, result.Inserted, 3)
	assert.Equal(t, int64(30), result.Inserted[0].OrderNumber)
	assert.Equal(t, int64(10), result.Inserted[1].OrderNumber)
	assert.Equal(t, int64(20), result.Inserted[2].OrderNumber)
	assert.Equal(t, 1, result.RateLookups)
	assert.Equal(t, 2, result.RateCacheHits)
}
