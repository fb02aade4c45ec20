package orders

import (
	"context"
	"fmt"

	"order-ledger/core/reconcile"
	"order-ledger/feature/orders/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// batchSize bounds IN lists and multi-row inserts.
const batchSize = 500

// Store is the gorm-backed ledger. It implements reconcile.Store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OrderNumbers returns every persisted order number in ascending order.
func (s *Store) OrderNumbers(ctx context.Context) ([]int64, error) {
	var keys []int64
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Order("order_number").
		Pluck("order_number", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order numbers: %w", err)
	}
	return keys, nil
}

// FindByOrderNumbers loads the records with the given order numbers.
// Unknown numbers are ignored.
func (s *Store) FindByOrderNumbers(ctx context.Context, keys []int64) ([]reconcile.Order, error) {
	out := make([]reconcile.Order, 0, len(keys))
	for _, chunk := range chunks(keys) {
		var rows []models.Order
		if err := s.db.WithContext(ctx).Where("order_number IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to load orders: %w", err)
		}
		for _, row := range rows {
			out = append(out, row.ToRecord())
		}
	}
	return out, nil
}

// WithinTx runs fn in a database transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, m reconcile.Mutator) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &mutator{tx: tx})
	})
}

// List returns every record ordered by delivery date, then order number.
func (s *Store) List(ctx context.Context) ([]reconcile.Order, error) {
	var rows []models.Order
	err := s.db.WithContext(ctx).
		Order("delivery_time").
		Order("order_number").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	out := make([]reconcile.Order, len(rows))
	for i, row := range rows {
		out[i] = row.ToRecord()
	}
	return out, nil
}

// TotalForeign sums the foreign amounts of records.
func TotalForeign(records []reconcile.Order) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.ForeignAmount)
	}
	return total
}

type mutator struct {
	tx *gorm.DB
}

func (m *mutator) DeleteBatch(ctx context.Context, keys []int64) error {
	for _, chunk := range chunks(keys) {
		if err := m.tx.WithContext(ctx).Where("order_number IN ?", chunk).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}
	}
	return nil
}

func (m *mutator) UpdateBatch(ctx context.Context, records []reconcile.Order) error {
	for _, r := range records {
		row := models.FromRecord(r)
		err := m.tx.WithContext(ctx).
			Model(&models.Order{}).
			Where("order_number = ?", r.OrderNumber).
			Updates(row.Fields()).Error
		if err != nil {
			return fmt.Errorf("failed to update order %d: %w", r.OrderNumber, err)
		}
	}
	return nil
}

func (m *mutator) InsertBatch(ctx context.Context, records []reconcile.Order) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.Order, len(records))
	for i, r := range records {
		rows[i] = models.FromRecord(r)
	}
	if err := m.tx.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}
	return nil
}

func chunks(keys []int64) [][]int64 {
	var out [][]int64
	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[start:end])
	}
	return out
}
