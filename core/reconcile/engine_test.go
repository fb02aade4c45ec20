package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"order-ledger/core/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	calls [][]Order
	err   error
}

func (n *recordingNotifier) Deliver(ctx context.Context, orders []Order) error {
	n.calls = append(n.calls, orders)
	return n.err
}

func newTestEngine(store Store, rates RateSource, notifier Notifier, today string) *Engine {
	now, _ := time.Parse("2006-01-02 15:04", today+" 12:00")
	return NewEngine(Spec{
		Store:     store,
		Rates:     rates,
		Notifier:  notifier,
		Clock:     clock.NewFixed(now),
		HasHeader: true,
	}, zap.NewNop())
}

func TestRun_UpdateAndInsertScenario(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-01-02": "92"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")

	report, err := engine.Run(context.Background(), sheet(
		row(1, 1, "12", "2024-01-01"),
		row(2, 2, "5", "2024-01-02"),
	), RunOptions{})
	require.NoError(t, err)

	updated, _ := store.get(1)
	assert.Equal(t, "12", updated.ForeignAmount.String())
	assert.Equal(t, "1080", updated.LocalAmount.String())

	inserted, ok := store.get(2)
	require.True(t, ok)
	assert.Equal(t, "460", inserted.LocalAmount.String())

	assert.Equal(t, 0, report.Result.Deleted)
	assert.Len(t, report.Result.Updated, 1)
	assert.Len(t, report.Result.Inserted, 1)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_DeleteWithoutLookups(t *testing.T) {
	store := newMemStore(
		order(1, 1, "10", "2024-01-01", "900"),
		order(2, 2, "5", "2024-01-02", "460"),
	)
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-01-02": "92"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")

	report, err := engine.Run(context.Background(), sheet(row(2, 2, "5", "2024-01-02")), RunOptions{})
	require.NoError(t, err)

	_, ok := store.get(1)
	assert.False(t, ok)
	kept, ok := store.get(2)
	require.True(t, ok)
	assert.Equal(t, "460", kept.LocalAmount.String())

	assert.Equal(t, 0, rates.total())
	assert.Equal(t, 1, report.Result.Deleted)
	assert.Empty(t, report.Result.Updated)
}

func TestRun_Idempotent(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-01-02": "92", "2024-01-03": "93"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")
	rows := sheet(
		row(1, 1, "12", "2024-01-01"),
		row(2, 2, "5", "2024-01-02"),
		row(3, 3, "7.25", "2024-01-03"),
	)

	_, err := engine.Run(context.Background(), rows, RunOptions{})
	require.NoError(t, err)
	txAfterFirst := store.txCount
	lookupsAfterFirst := rates.total()

	report, err := engine.Run(context.Background(), rows, RunOptions{})
	require.NoError(t, err)

	assert.True(t, report.Plan.Empty())
	assert.Equal(t, 3, report.Plan.Summary.Unchanged)
	assert.Equal(t, 0, report.Result.Deleted)
	assert.Empty(t, report.Result.Updated)
	assert.Empty(t, report.Result.Inserted)
	assert.Equal(t, txAfterFirst, store.txCount)
	assert.Equal(t, lookupsAfterFirst, rates.total())
}

func TestRun_SharedDeliveryDateLooksUpOnce(t *testing.T) {
	store := newMemStore(
		order(1, 1, "1", "2024-01-01", "90"),
		order(2, 2, "2", "2024-01-01", "180"),
	)
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-02-01": "100"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")

	var rows [][]string
	rows = append(rows, row(1, 1, "3", "2024-02-01"), row(2, 2, "4", "2024-02-01"))
	for n := int64(3); n < 50; n++ {
		rows = append(rows, row(n, n, "1", "2024-02-01"))
	}

	report, err := engine.Run(context.Background(), sheet(rows...), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, rates.callsFor("2024-02-01"))
	assert.Equal(t, 0, rates.callsFor("2024-01-01"))
	assert.Equal(t, 1, report.Result.RateLookups)
	assert.Len(t, report.Result.Inserted, 47)
}

func TestRun_RateFailureInInsertPhaseCommitsNothing(t *testing.T) {
	store := newMemStore(
		order(1, 1, "10", "2024-01-01", "900"),
		order(2, 2, "10", "2024-01-01", "900"),
	)
	rates := newCountingRates(map[string]string{"2024-01-01": "90"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")

	report, err := engine.Run(context.Background(), sheet(
		row(1, 2, "11", "2024-01-01"),
		row(2, 3, "1", "2024-01-06"),
	), RunOptions{})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrRateUnavailable)

	_, ok := store.get(1)
	assert.True(t, ok)
	o2, _ := store.get(2)
	assert.Equal(t, "10", o2.ForeignAmount.String())
	assert.Equal(t, 2, store.len())
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	engine := newTestEngine(store, newCountingRates(nil), nil, "2023-12-01")

	_, err := engine.Run(context.Background(), sheet(
		row(1, 2, "5", "2024-01-02"),
		[]string{"2", "3", "5"},
	), RunOptions{})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, MissingField, pe.Kind)
	assert.Equal(t, 0, store.txCount)
	assert.Equal(t, 1, store.len())
}

func TestRun_DuplicateRowsLastWins(t *testing.T) {
	store := newMemStore()
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-01-02": "92"})
	engine := newTestEngine(store, rates, nil, "2023-12-01")

	_, err := engine.Run(context.Background(), sheet(
		row(1, 7, "5", "2024-01-01"),
		row(2, 7, "6", "2024-01-02"),
	), RunOptions{})
	require.NoError(t, err)

	got, ok := store.get(7)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.SequenceNumber)
	assert.Equal(t, "6", got.ForeignAmount.String())
	assert.Equal(t, "552", got.LocalAmount.String())
}

func TestRun_DryRun(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-02": "92"})
	notifier := &recordingNotifier{}
	engine := newTestEngine(store, rates, notifier, "2025-01-01")

	report, err := engine.Run(context.Background(), sheet(row(2, 2, "5", "2024-01-02")), RunOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Nil(t, report.Result)
	assert.Equal(t, []int64{1}, report.Plan.ToDelete)
	assert.Equal(t, []int64{2}, report.Plan.ToInsert)
	assert.Equal(t, 1, store.len())
	assert.Equal(t, 0, store.txCount)
	assert.Equal(t, 0, rates.total())
	assert.Empty(t, notifier.calls)
}

func TestRun_OverdueNotification(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{
		"2024-01-01": "90",
		"2024-03-01": "91",
		"2024-06-01": "92",
		"2024-02-01": "93",
	})
	notifier := &recordingNotifier{}
	engine := newTestEngine(store, rates, notifier, "2024-04-01")

	report, err := engine.Run(context.Background(), sheet(
		row(1, 1, "11", "2024-01-01"),
		row(2, 5, "1", "2024-03-01"),
		row(3, 4, "1", "2024-06-01"),
		row(4, 3, "1", "2024-02-01"),
	), RunOptions{})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	var keys []int64
	for _, o := range notifier.calls[0] {
		keys = append(keys, o.OrderNumber)
	}
	assert.Equal(t, []int64{5, 3}, keys, "only inserted overdue orders, in insertion order")
	assert.Equal(t, notifier.calls[0], report.Overdue)
}

func TestRun_NotifyUpdated(t *testing.T) {
	store := newMemStore(order(1, 1, "10", "2024-01-01", "900"))
	rates := newCountingRates(map[string]string{"2024-01-01": "90", "2024-02-01": "93"})
	notifier := &recordingNotifier{}
	now, _ := time.Parse("2006-01-02", "2024-04-01")
	engine := NewEngine(Spec{
		Store:         store,
		Rates:         rates,
		Notifier:      notifier,
		Clock:         clock.NewFixed(now),
		HasHeader:     true,
		NotifyUpdated: true,
	}, zap.NewNop())

	_, err := engine.Run(context.Background(), sheet(
		row(1, 1, "11", "2024-01-01"),
		row(2, 3, "1", "2024-02-01"),
	), RunOptions{})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	require.Len(t, notifier.calls[0], 2)
	assert.Equal(t, int64(3), notifier.calls[0][0].OrderNumber, "inserted first")
	assert.Equal(t, int64(1), notifier.calls[0][1].OrderNumber)
}

func TestRun_NotifierFailureKeepsCommit(t *testing.T) {
	store := newMemStore()
	rates := newCountingRates(map[string]string{"2024-01-01": "90"})
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	engine := newTestEngine(store, rates, notifier, "2024-04-01")

	report, err := engine.Run(context.Background(), sheet(row(1, 1, "1", "2024-01-01")), RunOptions{})

	var notifyErr *NotifierError
	require.ErrorAs(t, err, &notifyErr)
	assert.Equal(t, 1, notifyErr.Orders)
	require.NotNil(t, report)
	assert.Len(t, report.Overdue, 1)

	_, ok := store.get(1)
	assert.True(t, ok, "ledger update is not rolled back")
}

func TestRun_NoOverdueNoDelivery(t *testing.T) {
	store := newMemStore()
	rates := newCountingRates(map[string]string{"2024-06-01": "90"})
	notifier := &recordingNotifier{}
	engine := newTestEngine(store, rates, notifier, "2024-04-01")

	report, err := engine.Run(context.Background(), sheet(row(1, 1, "1", "2024-06-01")), RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Overdue)
	assert.Empty(t, notifier.calls)
}
