package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"order-ledger/core/clock"
	"order-ledger/core/reconcile"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrArchiveDisabled is returned by snapshot operations without an archive.
var ErrArchiveDisabled = errors.New("snapshot archive is disabled")

// RowSource provides the current sheet content.
type RowSource interface {
	Rows(ctx context.Context) ([][]string, error)
}

// SourceInfo describes where rows come from. It is recorded in snapshots.
type SourceInfo struct {
	SpreadsheetID string
	Range         string
}

// SyncOptions selects how a synchronization runs.
type SyncOptions struct {
	// DryRun plans without writing or notifying.
	DryRun bool
	// Snapshot replays an archived snapshot instead of fetching the sheet.
	Snapshot string
}

// Listing is the order list served to clients.
type Listing struct {
	Orders       []reconcile.Order `json:"orders"`
	TotalDollars decimal.Decimal   `json:"total_dollars"`
}

// Service synchronizes the ledger with the sheet and serves it.
type Service struct {
	source  RowSource
	info    SourceInfo
	engine  *reconcile.Engine
	store   *Store
	archive *Archive
	clock   clock.Clock
	logger  *zap.Logger

	sf    singleflight.Group
	runMu sync.Mutex
}

// NewService creates a service. archive may be nil.
func NewService(source RowSource, info SourceInfo, engine *reconcile.Engine, store *Store, archive *Archive, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Service{
		source:  source,
		info:    info,
		engine:  engine,
		store:   store,
		archive: archive,
		clock:   clk,
		logger:  logger,
	}
}

// Sync runs one reconciliation. Concurrent calls with the same options share
// a single run and its result; writing runs never overlap.
func (s *Service) Sync(ctx context.Context, opts SyncOptions) (*reconcile.RunReport, error) {
	key := fmt.Sprintf("dry=%t snapshot=%s", opts.DryRun, opts.Snapshot)
	v, err, shared := s.sf.Do(key, func() (any, error) {
		return s.sync(ctx, opts)
	})
	if shared {
		s.logger.Debug("Joined in-flight synchronization", zap.String("key", key))
	}
	report, _ := v.(*reconcile.RunReport)
	return report, err
}

func (s *Service) sync(ctx context.Context, opts SyncOptions) (*reconcile.RunReport, error) {
	if !opts.DryRun {
		s.runMu.Lock()
		defer s.runMu.Unlock()
	}

	rows, err := s.rows(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.engine.Run(ctx, rows, reconcile.RunOptions{DryRun: opts.DryRun})
}

func (s *Service) rows(ctx context.Context, opts SyncOptions) ([][]string, error) {
	if opts.Snapshot != "" {
		if s.archive == nil {
			return nil, ErrArchiveDisabled
		}
		snap, err := s.archive.Load(ctx, opts.Snapshot)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Replaying snapshot",
			zap.String("snapshot", opts.Snapshot),
			zap.Time("fetched_at", snap.FetchedAt),
			zap.Int("rows", len(snap.Rows)),
		)
		return snap.Rows, nil
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}

	if s.archive != nil {
		snap := Snapshot{
			FetchedAt:     s.clock.Now(),
			SpreadsheetID: s.info.SpreadsheetID,
			Range:         s.info.Range,
			Rows:          rows,
		}
		// An unavailable archive must not block synchronization.
		if name, err := s.archive.Save(ctx, snap); err != nil {
			s.logger.Warn("Snapshot archive failed", zap.Error(err))
		} else {
			s.logger.Info("Snapshot archived", zap.String("snapshot", name))
		}
	}
	return rows, nil
}

// List returns the ledger ordered by delivery date with the foreign total.
func (s *Service) List(ctx context.Context) (*Listing, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Listing{Orders: records, TotalDollars: TotalForeign(records)}, nil
}

// Snapshots lists archived snapshots, newest first.
func (s *Service) Snapshots(ctx context.Context) ([]SnapshotInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx)
}
