package reconcile

import (
	"context"

	"order-ledger/core/date"
)

// Notifier delivers the overdue digest.
type Notifier interface {
	Deliver(ctx context.Context, orders []Order) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, orders []Order) error

// Deliver calls f(ctx, orders).
func (f NotifierFunc) Deliver(ctx context.Context, orders []Order) error {
	return f(ctx, orders)
}

// CollectOverdue returns the records delivered before today, in input order.
func CollectOverdue(records []Order, today date.Date) []Order {
	overdue := []Order{}
	for _, r := range records {
		if r.DeliveryDate.Before(today) {
			overdue = append(overdue, r)
		}
	}
	return overdue
}
