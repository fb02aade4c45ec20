package rates

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-ledger/core/date"
	"order-ledger/core/reconcile"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// requestLayout is the date format of the date_req parameter.
const requestLayout = "02/01/2006"

// Client fetches daily rates from the Central Bank XML feed.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a feed client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

type valCurs struct {
	XMLName xml.Name `xml:"ValCurs"`
	Date    string   `xml:"Date,attr"`
	Valutes []valute `xml:"Valute"`
}

type valute struct {
	ID       string `xml:"ID,attr"`
	CharCode string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Value    string `xml:"Value"`
}

// Rate returns the local-currency price of one unit of the configured
// currency on day. It returns reconcile.ErrNoQuotation when the feed has no
// entry for the currency.
func (c *Client) Rate(ctx context.Context, day date.Date) (decimal.Decimal, error) {
	endpoint, err := c.requestURL(day)
	if err != nil {
		return decimal.Decimal{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Decimal{}, fmt.Errorf("rate feed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	rate, err := c.decode(resp.Body)
	if err != nil {
		return decimal.Decimal{}, err
	}

	c.logger.Debug("Rate fetched",
		zap.Stringer("date", day),
		zap.String("currency_id", c.cfg.CurrencyID),
		zap.Stringer("rate", rate),
	)
	return rate, nil
}

func (c *Client) requestURL(day date.Date) (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("invalid rate feed url: %w", err)
	}
	q := u.Query()
	q.Set("date_req", day.Format(requestLayout))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decode reads a windows-1251 ValCurs document. Values use a decimal comma
// and are quoted per Nominal units.
func (c *Client) decode(r io.Reader) (decimal.Decimal, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc valCurs
	if err := dec.Decode(&doc); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode rate feed: %w", err)
	}

	for _, v := range doc.Valutes {
		if v.ID != c.cfg.CurrencyID {
			continue
		}
		value, err := parseComma(v.Value)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid rate value %q: %w", v.Value, err)
		}
		nominal := decimal.NewFromInt(1)
		if strings.TrimSpace(v.Nominal) != "" {
			if nominal, err = parseComma(v.Nominal); err != nil || !nominal.IsPositive() {
				return decimal.Decimal{}, fmt.Errorf("invalid rate nominal %q", v.Nominal)
			}
		}
		return value.Div(nominal), nil
	}

	return decimal.Decimal{}, fmt.Errorf("%w: currency %s not in feed dated %q", reconcile.ErrNoQuotation, c.cfg.CurrencyID, doc.Date)
}

func parseComma(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
