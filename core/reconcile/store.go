package reconcile

import "context"

// Store is the persisted order ledger as seen by the engine.
type Store interface {
	// OrderNumbers returns every order number currently stored.
	OrderNumbers(ctx context.Context) ([]int64, error)

	// FindByOrderNumbers returns the stored records for the given order numbers.
	// Unknown numbers are skipped.
	FindByOrderNumbers(ctx context.Context, keys []int64) ([]Order, error)

	// WithinTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, m Mutator) error) error
}

// Mutator applies batch writes inside a transaction.
type Mutator interface {
	// DeleteBatch removes the records with the given order numbers.
	DeleteBatch(ctx context.Context, keys []int64) error

	// UpdateBatch replaces the stored records matching each order's OrderNumber.
	UpdateBatch(ctx context.Context, orders []Order) error

	// InsertBatch creates new records.
	InsertBatch(ctx context.Context, orders []Order) error
}
