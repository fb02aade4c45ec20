package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-ledger/core/utils"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrNotConfigured is returned when no spreadsheet id is set.
var ErrNotConfigured = errors.New("spreadsheet id is not configured")

// Client reads the order range of one spreadsheet.
type Client struct {
	cfg     Config
	service *sheets.Service
	logger  *zap.Logger
}

// NewClient creates a read-only Sheets client for the configured spreadsheet.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrNotConfigured
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{cfg: cfg, service: service, logger: logger}, nil
}

// Rows fetches the configured range as formatted text, one slice per row.
// Trailing empty cells are omitted by the API, so rows may be short.
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	timeout := c.cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := c.service.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, c.cfg.Range).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch range %s: %w", c.cfg.Range, err)
	}

	rows := utils.ToStringRows(resp.Values)
	c.logger.Debug("Sheet fetched",
		zap.String("range", resp.Range),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)),
	)
	return rows, nil
}
