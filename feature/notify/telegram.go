package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-ledger/core/reconcile"

	"go.uber.org/zap"
)

// Telegram delivers the overdue digest through the Bot API.
type Telegram struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(cfg Config, logger *zap.Logger) *Telegram {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Telegram{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Deliver sends one digest to every configured chat. A failing chat does not
// stop delivery to the others; all failures are returned joined.
func (t *Telegram) Deliver(ctx context.Context, orders []reconcile.Order) error {
	if len(orders) == 0 {
		return nil
	}
	text := Digest(orders, t.cfg.Currency)

	var errs []error
	for _, chatID := range t.cfg.ChatIDs {
		if err := t.send(ctx, chatID, text); err != nil {
			t.logger.Warn("Telegram delivery failed", zap.String("chat_id", chatID), zap.Error(err))
			errs = append(errs, fmt.Errorf("chat %s: %w", chatID, err))
			continue
		}
		t.logger.Debug("Telegram digest sent", zap.String("chat_id", chatID), zap.Int("orders", len(orders)))
	}
	return errors.Join(errs...)
}

func (t *Telegram) send(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	endpoint := strings.TrimSuffix(t.cfg.APIURL, "/") + "/bot" + t.cfg.Token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		// The url carries the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("sendMessage request failed: %w", urlErr.Err)
		}
		return fmt.Errorf("sendMessage request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if !result.OK {
		return fmt.Errorf("telegram rejected message (status %d): %s", resp.StatusCode, result.Description)
	}
	return nil
}
