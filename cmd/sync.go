package cmd

import (
	"context"
	"errors"

	"order-ledger/core/reconcile"
	"order-ledger/feature/orders"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync   bool
	snapshotSync string
)

// syncCmd runs one synchronization.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the ledger with the order spreadsheet once",
	Long: `Fetches the order spreadsheet and applies the minimal set of deletions,
updates and insertions to the ledger in one transaction. New overdue orders are
reported to Telegram.

Examples:
  # Show what would change
  sync --dry-run

  # Apply
  sync

  # Replay an archived snapshot
  sync --snapshot 20240102T120000.000Z`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, write nothing and notify nobody")
	syncCmd.Flags().StringVar(&snapshotSync, "snapshot", "", "Replay an archived snapshot instead of fetching the sheet")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	report, err := a.service.Sync(ctx, orders.SyncOptions{DryRun: dryRunSync, Snapshot: snapshotSync})
	var notifyErr *reconcile.NotifierError
	if err != nil && !errors.As(err, &notifyErr) {
		return err
	}

	printRunReport(a.log, report)
	return err
}

// printRunReport logs the plan and, for committed runs, the result.
func printRunReport(l *zap.Logger, report *reconcile.RunReport) {
	s := report.Plan.Summary
	l.Info("Reconciliation report",
		zap.String("run_id", report.RunID),
		zap.Int("external", s.External),
		zap.Int("persisted", s.Persisted),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("deletes", s.Deletes),
		zap.Int("updates", s.Updates),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("inserts", s.Inserts),
	)

	actions := report.Plan.Actions
	maxShow := 5
	if len(actions) < maxShow {
		maxShow = len(actions)
	}
	for _, action := range actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.Int64("order_number", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(actions)-maxShow))
	}

	if report.DryRun {
		l.Info("Dry-run mode: No changes were made.")
		return
	}
	l.Info("Ledger synchronized",
		zap.Int("deleted", report.Result.Deleted),
		zap.Int("updated", len(report.Result.Updated)),
		zap.Int("inserted", len(report.Result.Inserted)),
		zap.Int("overdue", len(report.Overdue)),
		zap.Duration("duration", report.Duration),
	)
}
