package notify

import (
	"context"

	"order-ledger/core/reconcile"

	"go.uber.org/zap"
)

// Log writes the overdue digest to the logger. It is used when no Telegram
// bot is configured.
type Log struct {
	logger   *zap.Logger
	currency string
}

// NewLog creates a logging notifier.
func NewLog(logger *zap.Logger, currency string) *Log {
	return &Log{logger: logger, currency: currency}
}

// Deliver logs one warning per overdue order.
func (n *Log) Deliver(ctx context.Context, orders []reconcile.Order) error {
	for _, o := range orders {
		n.logger.Warn("Order overdue",
			zap.Int64("order_number", o.OrderNumber),
			zap.Stringer("delivery_date", o.DeliveryDate),
			zap.String("price", FormatPrice(o.ForeignAmount, n.currency)),
		)
	}
	return nil
}

// New picks the Telegram notifier when a bot is configured and the logging
// notifier otherwise.
func New(cfg Config, logger *zap.Logger) reconcile.Notifier {
	if cfg.Enabled() {
		return NewTelegram(cfg, logger)
	}
	return NewLog(logger, cfg.Currency)
}
