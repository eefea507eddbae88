// internal/currency/converter.go
package currency

import (
	"context"
)

// Converter converts with live rates when a provider is configured, and
// with StaticRates otherwise or when the provider fails.
type Converter struct {
	provider RateProvider
	cache    *RateCache
	fallback RateTable
}

// NewConverter wires a converter. provider may be nil.
func NewConverter(provider RateProvider, rc *RateCache) *Converter {
	return &Converter{provider: provider, cache: rc, fallback: StaticRates}
}

// Rate resolves a pair rate, consulting the cache first. Only live rates
// are cached per pair; static fallbacks are recomputed so a recovered
// provider is picked up on the next call.
func (c *Converter) Rate(ctx context.Context, from, to string) (float64, bool) {
	if normalizeCode(from) == normalizeCode(to) {
		return 1, true
	}
	if c.cache != nil {
		if r, ok := c.cache.Get(from, to); ok {
			return r, true
		}
	}

	if live, ok := c.liveTable(ctx); ok {
		if rate, ok := live.Rate(from, to); ok {
			if c.cache != nil {
				c.cache.Set(from, to, rate)
			}
			return rate, true
		}
	}
	return c.fallback.Rate(from, to)
}

// Convert returns amount in to, rounded to cents. The bool is false when
// no rate is known for the pair.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, bool) {
	if normalizeCode(from) == normalizeCode(to) {
		return round2(amount), true
	}
	rate, ok := c.Rate(ctx, from, to)
	if !ok {
		return 0, false
	}
	return round2(amount * rate), true
}

// liveTable returns the provider's table, cached or freshly fetched. The
// bool is false when there is no provider or the fetch failed.
func (c *Converter) liveTable(ctx context.Context) (RateTable, bool) {
	if c.provider == nil {
		return nil, false
	}
	if c.cache != nil {
		if t, ok := c.cache.Table(); ok {
			return t, true
		}
	}
	t, err := c.provider.Rates(ctx)
	if err != nil || len(t) == 0 {
		return nil, false
	}
	if c.cache != nil {
		c.cache.SetTable(t)
	}
	return t, true
}
