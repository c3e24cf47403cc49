package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Totals are the formatted aggregate asset values in the three supported
// currencies. They are derived display data, never a source of truth.
type Totals struct {
	YER string `json:"yer"`
	SAR string `json:"sar"`
	USD string `json:"usd"`
}

// TotalsCache computes the aggregate asset value and caches the formatted
// result until an invalidating write occurs. The cache has no TTL: it is
// cleared by correctness (any write to assets or rates), never by time, and a
// stale read is a bug rather than an accepted staleness window.
type TotalsCache struct {
	store *Store
	rates *RateRegistry

	mu     sync.Mutex
	cached *Totals
}

// NewTotalsCache returns an empty cache over the store and registry.
func NewTotalsCache(store *Store, rates *RateRegistry) *TotalsCache {
	return &TotalsCache{store: store, rates: rates}
}

// Totals returns the aggregate totals. With useCache set and a cached value
// present it returns immediately, touching neither the store nor the rate
// gate. Otherwise it waits for the rates, folds every asset through the
// conversion into a base-currency sum, derives the secondary totals by
// dividing by the corresponding rate, formats, caches and returns.
//
// The sum accumulates at full precision; rounding happens only at format
// time.
func (c *TotalsCache) Totals(ctx context.Context, useCache bool) (Totals, error) {
	if useCache {
		c.mu.Lock()
		if c.cached != nil {
			t := *c.cached
			c.mu.Unlock()
			return t, nil
		}
		c.mu.Unlock()
	}

	if err := c.rates.Wait(ctx); err != nil {
		return Totals{}, err
	}
	rates := c.rates.Snapshot()

	assets, err := decodeAll[Asset](c.store, CollectionAssets)
	if err != nil {
		return Totals{}, err
	}

	totalYER := decimal.Zero
	for _, a := range assets {
		totalYER = totalYER.Add(decimal.NewFromFloat(rates.ConvertToYER(a.Value, a.Currency, a.Type)))
	}
	totalUSD := totalYER.Div(decimal.NewFromFloat(rates.USDToYER))
	totalSAR := totalYER.Div(decimal.NewFromFloat(rates.SARToYER))

	t := Totals{
		YER: FormatAmount(totalYER, "YER"),
		SAR: FormatAmount(totalSAR, "SAR"),
		USD: FormatAmount(totalUSD, "USD"),
	}
	c.mu.Lock()
	c.cached = &t
	c.mu.Unlock()
	return t, nil
}

// Invalidate clears the cached totals. It is the single invalidation entry
// point: every mutation path on assets or rates calls it before the next
// cached read is allowed.
func (c *TotalsCache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// Cached returns the current cache slot without computing anything. It
// reports false when the slot is empty.
func (c *TotalsCache) Cached() (Totals, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return Totals{}, false
	}
	return *c.cached, true
}
