package orders

import (
	"context"
	"errors"
	"time"

	"order-ledger/core/reconcile"

	"go.uber.org/zap"
)

// RowSourceFunc adapts a function to the RowSource interface.
type RowSourceFunc func(ctx context.Context) ([][]string, error)

// Rows calls f(ctx).
func (f RowSourceFunc) Rows(ctx context.Context) ([][]string, error) {
	return f(ctx)
}

// Schedule runs a synchronization every interval until ctx is done, and once
// immediately when onStart is set. A failed run is logged and the schedule
// goes on. A non-positive interval disables the periodic runs.
func (s *Service) Schedule(ctx context.Context, interval time.Duration, onStart bool) {
	if onStart {
		s.scheduledRun(ctx)
	}
	if interval <= 0 {
		s.logger.Info("Scheduled synchronization disabled")
		return
	}

	s.logger.Info("Scheduled synchronization enabled", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scheduledRun(ctx)
		}
	}
}

func (s *Service) scheduledRun(ctx context.Context) {
	report, err := s.Sync(ctx, SyncOptions{})
	var notifyErr *reconcile.NotifierError
	switch {
	case err == nil:
		s.logger.Info("Scheduled synchronization finished", zap.String("run_id", report.RunID))
	case errors.As(err, &notifyErr):
		s.logger.Warn("Scheduled synchronization committed without notification", zap.String("run_id", report.RunID), zap.Error(err))
	case ctx.Err() != nil:
		return
	default:
		s.logger.Error("Scheduled synchronization failed", zap.Error(err))
	}
}
