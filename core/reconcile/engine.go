package reconcile

import (
	"context"
	"time"

	"order-ledger/core/clock"
	"order-ledger/core/date"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spec bundles the collaborators and policies of an Engine.
type Spec struct {
	// Store is the persisted ledger.
	Store Store

	// Rates resolves daily exchange rates.
	Rates RateSource

	// Notifier receives overdue orders. If nil, nobody is notified.
	Notifier Notifier

	// Clock decides what "today" is. Defaults to the system clock.
	Clock clock.Clock

	// HasHeader drops the first sheet row.
	HasHeader bool

	// NotifyUpdated also reports overdue orders among updated records.
	NotifyUpdated bool
}

// Engine runs reconciliations. It assumes a single run at a time; callers
// that may trigger concurrently must serialize runs themselves.
type Engine struct {
	spec     Spec
	executor *Executor
	logger   *zap.Logger
}

// NewEngine creates an engine.
func NewEngine(spec Spec, logger *zap.Logger) *Engine {
	if spec.Clock == nil {
		spec.Clock = clock.NewSystem()
	}
	return &Engine{
		spec:     spec,
		executor: NewExecutor(spec.Store, NewRateResolver(spec.Rates), logger),
		logger:   logger,
	}
}

// Plan parses the rows and compares them with the store. It writes nothing.
func (e *Engine) Plan(ctx context.Context, rows [][]string) (*Plan, error) {
	candidates, err := ParseRows(rows, e.spec.HasHeader)
	if err != nil {
		return nil, err
	}
	set := NewCandidateSet(candidates)

	persisted, err := e.spec.Store.OrderNumbers(ctx)
	if err != nil {
		return nil, &StoreError{Op: "load order numbers", Err: err}
	}

	var shared []int64
	for _, key := range persisted {
		if set.Has(key) {
			shared = append(shared, key)
		}
	}

	current := make(map[int64]Order, len(shared))
	if len(shared) > 0 {
		records, err := e.spec.Store.FindByOrderNumbers(ctx, shared)
		if err != nil {
			return nil, &StoreError{Op: "load orders", Err: err}
		}
		for _, r := range records {
			current[r.OrderNumber] = r
		}
	}

	return BuildPlan(set, persisted, current), nil
}

// Run performs a full reconciliation of rows against the store.
//
// On a notifier failure Run returns both the report of the committed run and
// a *NotifierError. Any other error means nothing was committed.
func (e *Engine) Run(ctx context.Context, rows [][]string, opts RunOptions) (*RunReport, error) {
	report := &RunReport{
		RunID:   uuid.NewString(),
		DryRun:  opts.DryRun,
		Overdue: []Order{},
		Started: e.spec.Clock.Now(),
	}
	l := e.logger.With(zap.String("run_id", report.RunID))
	start := time.Now()

	plan, err := e.Plan(ctx, rows)
	if err != nil {
		l.Error("Reconciliation planning failed", zap.Error(err))
		return nil, err
	}
	report.Plan = plan

	s := plan.Summary
	l.Info("Reconciliation planned",
		zap.Int("external", s.External),
		zap.Int("persisted", s.Persisted),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("deletes", s.Deletes),
		zap.Int("updates", s.Updates),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("inserts", s.Inserts),
		zap.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun {
		report.Duration = time.Since(start)
		return report, nil
	}

	result, err := e.executor.Execute(ctx, plan)
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return nil, err
	}
	report.Result = result

	l.Info("Reconciliation committed",
		zap.Int("deleted", result.Deleted),
		zap.Int("updated", len(result.Updated)),
		zap.Int("inserted", len(result.Inserted)),
		zap.Int("rate_lookups", result.RateLookups),
		zap.Int("rate_cache_hits", result.RateCacheHits),
	)

	fresh := result.Inserted
	if e.spec.NotifyUpdated {
		fresh = append(append([]Order{}, result.Inserted...), result.Updated...)
	}
	report.Overdue = CollectOverdue(fresh, date.Of(report.Started))
	report.Duration = time.Since(start)

	if len(report.Overdue) == 0 || e.spec.Notifier == nil {
		return report, nil
	}

	if err := e.spec.Notifier.Deliver(ctx, report.Overdue); err != nil {
		l.Error("Overdue digest delivery failed", zap.Int("orders", len(report.Overdue)), zap.Error(err))
		return report, &NotifierError{Orders: len(report.Overdue), Err: err}
	}
	l.Info("Overdue digest delivered", zap.Int("orders", len(report.Overdue)))

	return report, nil
}
