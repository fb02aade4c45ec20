package reconcile

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Executor applies plans to the store.
type Executor struct {
	store    Store
	resolver *RateResolver
	logger   *zap.Logger
}

// NewExecutor creates an executor.
func NewExecutor(store Store, resolver *RateResolver, logger *zap.Logger) *Executor {
	return &Executor{store: store, resolver: resolver, logger: logger}
}

// Execute applies the plan inside one transaction: deletes, then updates,
// then inserts. Rates are resolved while the transaction is open, so a rate
// failure during the insert phase also rolls back the deletes and updates.
//
// An empty plan returns an empty result without opening a transaction.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (*ExecutionResult, error) {
	result := &ExecutionResult{
		Updated:  []Order{},
		Inserted: []Order{},
	}
	if plan.Empty() {
		return result, nil
	}

	cache := NewRateCache()

	var (
		deleteKeys []int64
		updates    []Action
		inserts    []Action
	)
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDelete:
			deleteKeys = append(deleteKeys, action.Key)
		case ActionUpdate:
			updates = append(updates, action)
		case ActionInsert:
			inserts = append(inserts, action)
		}
	}

	var updated, inserted []Order
	err := e.store.WithinTx(ctx, func(ctx context.Context, m Mutator) error {
		updated, inserted = nil, nil

		if len(deleteKeys) > 0 {
			if err := m.DeleteBatch(ctx, deleteKeys); err != nil {
				return &StoreError{Op: "delete", Err: err}
			}
		}

		if len(updates) > 0 {
			orders := make([]Order, 0, len(updates))
			for _, action := range updates {
				order, err := e.rewrite(ctx, action, cache)
				if err != nil {
					return err
				}
				orders = append(orders, order)
			}
			if err := m.UpdateBatch(ctx, orders); err != nil {
				return &StoreError{Op: "update", Err: err}
			}
			updated = orders
		}

		if len(inserts) > 0 {
			orders := make([]Order, 0, len(inserts))
			for _, action := range inserts {
				rate, err := e.resolver.Resolve(ctx, action.Candidate.DeliveryDate, cache)
				if err != nil {
					return err
				}
				orders = append(orders, action.Candidate.toOrder(action.Candidate.ForeignAmount.Mul(rate)))
			}
			if err := m.InsertBatch(ctx, orders); err != nil {
				return &StoreError{Op: "insert", Err: err}
			}
			inserted = orders
		}

		return nil
	})
	if err != nil {
		e.logger.Warn("Reconciliation rolled back", zap.Error(err))
		var rateErr *RateUnavailableError
		var storeErr *StoreError
		if errors.As(err, &rateErr) || errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, &StoreError{Op: "commit", Err: err}
	}

	result.Deleted = len(deleteKeys)
	if updated != nil {
		result.Updated = updated
	}
	if inserted != nil {
		result.Inserted = inserted
	}
	result.RateLookups = cache.Misses()
	result.RateCacheHits = cache.Hits()

	return result, nil
}

// rewrite builds the replacement record for an update. The local amount is
// carried over unless a source field it depends on changed.
func (e *Executor) rewrite(ctx context.Context, action Action, cache *RateCache) (Order, error) {
	c := action.Candidate
	if !action.Recompute && action.Current != nil {
		return c.toOrder(action.Current.LocalAmount), nil
	}

	rate, err := e.resolver.Resolve(ctx, c.DeliveryDate, cache)
	if err != nil {
		return Order{}, err
	}
	return c.toOrder(c.ForeignAmount.Mul(rate)), nil
}
