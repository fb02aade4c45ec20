package reconcile

import (
	"context"

	"order-ledger/core/date"

	"github.com/shopspring/decimal"
)

// RateSource returns the foreign-to-local multiplier effective on a day.
// Implementations return ErrNoQuotation when the source has no rate for it.
type RateSource interface {
	Rate(ctx context.Context, day date.Date) (decimal.Decimal, error)
}

// RateSourceFunc adapts a function to the RateSource interface.
type RateSourceFunc func(ctx context.Context, day date.Date) (decimal.Decimal, error)

// Rate calls f(ctx, day).
func (f RateSourceFunc) Rate(ctx context.Context, day date.Date) (decimal.Decimal, error) {
	return f(ctx, day)
}

// RateCache holds the rates resolved during one run. It is never persisted
// and never shared between runs, so a corrected historical rate is picked up
// by the next run.
type RateCache struct {
	rates  map[date.Date]decimal.Decimal
	hits   int
	misses int
}

// NewRateCache returns an empty cache.
func NewRateCache() *RateCache {
	return &RateCache{rates: make(map[date.Date]decimal.Decimal)}
}

// Len returns the number of cached days.
func (c *RateCache) Len() int { return len(c.rates) }

// Hits returns how many resolutions were served from the cache.
func (c *RateCache) Hits() int { return c.hits }

// Misses returns how many resolutions reached the rate source.
func (c *RateCache) Misses() int { return c.misses }

// RateResolver resolves daily rates through a run cache.
type RateResolver struct {
	source RateSource
}

// NewRateResolver creates a resolver on top of a rate source.
func NewRateResolver(source RateSource) *RateResolver {
	return &RateResolver{source: source}
}

// Resolve returns the rate for day. A cached day never reaches the source; an
// uncached day is looked up exactly once and stored. Failed lookups are not
// cached and come back as *RateUnavailableError.
func (r *RateResolver) Resolve(ctx context.Context, day date.Date, cache *RateCache) (decimal.Decimal, error) {
	if rate, ok := cache.rates[day]; ok {
		cache.hits++
		return rate, nil
	}

	cache.misses++
	rate, err := r.source.Rate(ctx, day)
	if err != nil {
		return decimal.Decimal{}, &RateUnavailableError{Date: day, Err: err}
	}

	cache.rates[day] = rate
	return rate, nil
}
