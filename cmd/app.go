package cmd

import (
	"context"
	"errors"
	"fmt"

	"order-ledger/core/clock"
	"order-ledger/core/config"
	"order-ledger/core/database"
	"order-ledger/core/logger"
	"order-ledger/core/reconcile"
	"order-ledger/core/storage"
	"order-ledger/feature/notify"
	"order-ledger/feature/orders"
	"order-ledger/feature/rates"
	"order-ledger/feature/sheets"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the dependencies shared by the commands.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	archive *orders.Archive
	service *orders.Service
}

// loadBase loads configuration and builds the logger.
func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newArchive returns nil when archiving is disabled.
func newArchive(cfg *config.Config, l *zap.Logger) (*orders.Archive, error) {
	if !cfg.Storage.Archive {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return orders.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Region, l), nil
}

// bootstrap builds the full synchronization stack.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, l, err := loadBase()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	archive, err := newArchive(cfg, l)
	if err != nil {
		return nil, err
	}

	var source orders.RowSource
	client, err := sheets.NewClient(ctx, cfg.Sheets, l)
	switch {
	case errors.Is(err, sheets.ErrNotConfigured):
		// Snapshot replays and listings still work without a sheet.
		l.Warn("Spreadsheet not configured; only snapshot replays can synchronize")
		source = orders.RowSourceFunc(func(ctx context.Context) ([][]string, error) {
			return nil, sheets.ErrNotConfigured
		})
	case err != nil:
		return nil, err
	default:
		source = client
	}

	if !cfg.Telegram.Enabled() {
		l.Info("Telegram not configured; overdue orders are logged")
	}

	store := orders.NewStore(db)
	clk := clock.NewSystem()
	engine := reconcile.NewEngine(reconcile.Spec{
		Store:         store,
		Rates:         rates.NewClient(cfg.Rates, l),
		Notifier:      notify.New(cfg.Telegram, l),
		Clock:         clk,
		HasHeader:     cfg.Sheets.HasHeader,
		NotifyUpdated: cfg.Sync.NotifyUpdated,
	}, l)

	info := orders.SourceInfo{SpreadsheetID: cfg.Sheets.SpreadsheetID, Range: cfg.Sheets.Range}
	service := orders.NewService(source, info, engine, store, archive, clk, l)

	return &app{cfg: cfg, log: l, db: db, archive: archive, service: service}, nil
}
