package orders

import (
	"context"
	"errors"
	"testing"

	"order-ledger/core/database"
	"order-ledger/core/date"
	"order-ledger/core/reconcile"
	"order-ledger/feature/orders/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.Order{}))
	return db
}

func record(seq, num int64, amount, day, local string) reconcile.Order {
	return reconcile.Order{
		SequenceNumber: seq,
		OrderNumber:    num,
		ForeignAmount:  decimal.RequireFromString(amount),
		DeliveryDate:   date.MustParse(day),
		LocalAmount:    decimal.RequireFromString(local),
	}
}

func seed(t *testing.T, db *gorm.DB, records ...reconcile.Order) {
	t.Helper()
	for _, r := range records {
		row := models.FromRecord(r)
		require.NoError(t, db.Create(&row).Error)
	}
}

func TestStore_OrderNumbers(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db,
		record(1, 30, "1", "2024-01-01", "90"),
		record(2, 10, "1", "2024-01-01", "90"),
		record(3, 20, "1", "2024-01-01", "90"),
	)

	keys, err := NewStore(db).OrderNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, keys)
}

func TestStore_FindByOrderNumbers(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db,
		record(1, 1, "10", "2024-01-01", "900"),
		record(2, 2, "5.25", "2024-01-02", "483"),
	)

	found, err := NewStore(db).FindByOrderNumbers(context.Background(), []int64{2, 99})
	require.NoError(t, err)
	require.Len(t, found, 1)

	got := found[0]
	assert.Equal(t, int64(2), got.SequenceNumber)
	assert.Equal(t, "5.25", got.ForeignAmount.String())
	assert.Equal(t, date.New(2024, 1, 2), got.DeliveryDate)
	assert.Equal(t, "483", got.LocalAmount.String())
}

func TestStore_FindByOrderNumbersChunks(t *testing.T) {
	db := setupTestDB(t)
	var keys []int64
	for n := int64(1); n <= batchSize+20; n++ {
		seed(t, db, record(n, n, "1", "2024-01-01", "90"))
		keys = append(keys, n)
	}

	found, err := NewStore(db).FindByOrderNumbers(context.Background(), keys)
	require.NoError(t, err)
	assert.Len(t, found, batchSize+20)
}

func TestStore_WithinTxCommits(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db,
		record(1, 1, "10", "2024-01-01", "900"),
		record(2, 2, "20", "2024-01-01", "1800"),
	)
	store := NewStore(db)

	err := store.WithinTx(context.Background(), func(ctx context.Context, m reconcile.Mutator) error {
		if err := m.DeleteBatch(ctx, []int64{1}); err != nil {
			return err
		}
		if err := m.UpdateBatch(ctx, []reconcile.Order{record(9, 2, "0", "2024-03-01", "0")}); err != nil {
			return err
		}
		return m.InsertBatch(ctx, []reconcile.Order{record(3, 3, "7.5", "2024-02-01", "690")})
	})
	require.NoError(t, err)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, int64(3), all[0].OrderNumber)
	assert.Equal(t, int64(2), all[1].OrderNumber)
	assert.Equal(t, int64(9), all[1].SequenceNumber)
	assert.True(t, all[1].ForeignAmount.IsZero(), "zero values are written")
	assert.True(t, all[1].LocalAmount.IsZero())
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db, record(1, 1, "10", "2024-01-01", "900"))
	store := NewStore(db)

	boom := errors.New("rate unavailable")
	err := store.WithinTx(context.Background(), func(ctx context.Context, m reconcile.Mutator) error {
		require.NoError(t, m.DeleteBatch(ctx, []int64{1}))
		require.NoError(t, m.InsertBatch(ctx, []reconcile.Order{record(2, 2, "1", "2024-01-01", "90")}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	keys, err := store.OrderNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, keys)
}

func TestStore_InsertDuplicateFails(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db, record(1, 1, "10", "2024-01-01", "900"))

	err := NewStore(db).WithinTx(context.Background(), func(ctx context.Context, m reconcile.Mutator) error {
		return m.InsertBatch(ctx, []reconcile.Order{record(2, 1, "1", "2024-01-01", "90")})
	})
	assert.Error(t, err)
}

func TestStore_ListAndTotal(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	empty, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.True(t, TotalForeign(empty).IsZero())

	seed(t, db,
		record(1, 5, "10.5", "2024-03-01", "0"),
		record(2, 4, "2.25", "2024-01-01", "0"),
		record(3, 3, "1", "2024-03-01", "0"),
	)
	all, err := store.List(context.Background())
	require.NoError(t, err)

	var keys []int64
	for _, r := range all {
		keys = append(keys, r.OrderNumber)
	}
	assert.Equal(t, []int64{4, 3, 5}, keys)
	assert.Equal(t, "13.75", TotalForeign(all).String())
}

// One update and one insert against a real database, then an idempotent rerun.
func TestStore_EngineRun(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db, record(1, 1, "10", "2024-01-01", "900"))
	store := NewStore(db)

	rates := reconcile.RateSourceFunc(func(ctx context.Context, day date.Date) (decimal.Decimal, error) {
		switch day {
		case date.New(2024, 1, 1):
			return decimal.NewFromInt(90), nil
		case date.New(2024, 1, 2):
			return decimal.NewFromInt(92), nil
		}
		return decimal.Decimal{}, reconcile.ErrNoQuotation
	})
	engine := reconcile.NewEngine(reconcile.Spec{Store: store, Rates: rates, HasHeader: true}, zap.NewNop())

	rows := [][]string{
		{"№", "заказ №", "стоимость,$", "срок поставки"},
		{"1", "1", "12", "01.01.2024"},
		{"2", "2", "5", "02.01.2024"},
	}
	_, err := engine.Run(context.Background(), rows, reconcile.RunOptions{})
	require.NoError(t, err)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "12", all[0].ForeignAmount.String())
	assert.Equal(t, "1080", all[0].LocalAmount.String())
	assert.Equal(t, "460", all[1].LocalAmount.String())

	report, err := engine.Run(context.Background(), rows, reconcile.RunOptions{})
	require.NoError(t, err)
	assert.True(t, report.Plan.Empty())
}

// Amounts finer than the column scale must not look changed on the next run.
func TestStore_EngineRun_HighPrecisionIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	var lookups int
	rates := reconcile.RateSourceFunc(func(ctx context.Context, day date.Date) (decimal.Decimal, error) {
		lookups++
		return decimal.RequireFromString("90.1234567"), nil
	})
	engine := reconcile.NewEngine(reconcile.Spec{Store: store, Rates: rates}, zap.NewNop())

	rows := [][]string{{"1", "1", "1234567890.123456789", "01.01.2024"}}
	report, err := engine.Run(context.Background(), rows, reconcile.RunOptions{})
	require.NoError(t, err)
	require.Len(t, report.Result.Inserted, 1)
	assert.Equal(t, "1234567890.12346", report.Result.Inserted[0].ForeignAmount.String())
	assert.Equal(t, "111263525788.752", report.Result.Inserted[0].LocalAmount.String())
	assert.Equal(t, 1, lookups)

	report, err = engine.Run(context.Background(), rows, reconcile.RunOptions{})
	require.NoError(t, err)
	assert.True(t, report.Plan.Empty(), "actions: %+v", report.Plan.Actions)
	assert.Equal(t, 0, report.Plan.Summary.Updates)
	assert.Equal(t, 1, lookups)
}
