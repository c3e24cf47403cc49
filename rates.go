package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"
)

// Keys of the records held in the rates collection. LAST_UPDATE is display
// metadata, not a conversion rate; it is written in the same sequence as the
// rates so a reader never observes new rates with an old timestamp.
const (
	KeyUSDToYER       = "USD_TO_YER"
	KeySARToYER       = "SAR_TO_YER"
	KeyGoldPerGramYER = "GOLD_PER_GRAM_YER"
	KeyLastUpdate     = "LAST_UPDATE"
)

// Defaults applied when a rate record is absent (first run). Conversion and
// zakat math divide by these values, so they are never left at zero.
const (
	DefaultUSDToYER       = 250
	DefaultSARToYER       = 65
	DefaultGoldPerGramYER = 120000
)

// Rate is one keyed record of the rates collection. Conversion rates persist
// as strings and LAST_UPDATE as an epoch-millisecond number, matching the
// historical on-disk data; rateValue accepts both forms.
type Rate struct {
	ID    int64  `json:"id,omitempty"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Rates is an immutable snapshot of the exchange and gold rates.
type Rates struct {
	USDToYER       float64
	SARToYER       float64
	GoldPerGramYER float64
	LastUpdate     time.Time // zero when rates were never saved
}

// ConvertToYER converts a single value to the base currency. Cash multiplies
// by its currency rate (the base currency by 1), gold is grams priced at the
// gold rate. Pure function of the snapshot.
func (r Rates) ConvertToYER(value float64, currency, kind string) float64 {
	if kind == KindGold {
		return value * r.GoldPerGramYER
	}
	switch currency {
	case "USD":
		return value * r.USDToYER
	case "SAR":
		return value * r.SARToYER
	default:
		return value
	}
}

// RateRegistry is the process-wide cached view of the rates collection.
// Consumers that convert must Wait for the first successful Load before
// reading a Snapshot. The snapshot is swapped wholesale on every Load, never
// mutated in place.
type RateRegistry struct {
	store *Store

	mu       sync.RWMutex
	snapshot Rates

	readyOnce sync.Once
	ready     chan struct{}
}

// NewRateRegistry returns a registry bound to the store. No rates are loaded
// yet: call Load, or Wait from consumers.
func NewRateRegistry(store *Store) *RateRegistry {
	return &RateRegistry{store: store, ready: make(chan struct{})}
}

// Load reads every rates record and swaps in a fresh snapshot, filling gaps
// with the documented defaults. The first successful call releases Wait.
func (r *RateRegistry) Load() error {
	recs, err := r.store.GetAll(CollectionRates)
	if err != nil {
		return err
	}

	next := Rates{
		USDToYER:       DefaultUSDToYER,
		SARToYER:       DefaultSARToYER,
		GoldPerGramYER: DefaultGoldPerGramYER,
	}
	for _, rec := range recs {
		var rate Rate
		if err := fromRecord(rec, &rate); err != nil {
			return err
		}
		v, err := rateValue(rate.Value)
		if err != nil {
			log.Printf("warning: ignoring malformed rate %q: %v", rate.Key, err)
			continue
		}
		// Imported records bypass Set's validation, so a zero, negative or
		// non-finite value can reach the store. Conversion and totals divide
		// by these rates: keep the default rather than poison the snapshot.
		if validateAmount(v) != nil {
			log.Printf("warning: ignoring out-of-range rate %q: %v", rate.Key, v)
			continue
		}
		switch rate.Key {
		case KeyUSDToYER:
			next.USDToYER = v
		case KeySARToYER:
			next.SARToYER = v
		case KeyGoldPerGramYER:
			next.GoldPerGramYER = v
		case KeyLastUpdate:
			next.LastUpdate = time.UnixMilli(int64(v))
		}
	}

	r.mu.Lock()
	r.snapshot = next
	r.mu.Unlock()
	r.readyOnce.Do(func() { close(r.ready) })
	return nil
}

// Wait blocks until the first successful Load completes, or ctx is done.
// Once ready it returns immediately, forever.
func (r *RateRegistry) Wait(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current rates. Callers must Wait first.
func (r *RateRegistry) Snapshot() Rates {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Set validates and persists one conversion rate, then reloads so the
// in-memory view never drifts from the store.
func (r *RateRegistry) Set(key string, value float64) error {
	if err := validateRate(key, value); err != nil {
		return err
	}
	if err := r.put(Rate{Key: key, Value: strconv.FormatFloat(value, 'f', -1, 64)}); err != nil {
		return err
	}
	return r.Load()
}

// SaveRates validates and persists the three conversion rates plus the
// LAST_UPDATE stamp in one sequence, then reloads once. Validation happens
// before any write, so a bad value leaves the store untouched.
func (r *RateRegistry) SaveRates(usd, sar, gold float64) error {
	values := []struct {
		key string
		v   float64
	}{
		{KeyUSDToYER, usd},
		{KeySARToYER, sar},
		{KeyGoldPerGramYER, gold},
	}
	for _, rv := range values {
		if err := validateRate(rv.key, rv.v); err != nil {
			return err
		}
	}
	for _, rv := range values {
		if err := r.put(Rate{Key: rv.key, Value: strconv.FormatFloat(rv.v, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	if err := r.put(Rate{Key: KeyLastUpdate, Value: time.Now().UnixMilli()}); err != nil {
		return err
	}
	return r.Load()
}

// put upserts the record holding the rate's key, preserving its id when one
// already exists so each named rate stays a single record.
func (r *RateRegistry) put(rate Rate) error {
	existing, err := decodeAll[Rate](r.store, CollectionRates)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Key == rate.Key {
			rate.ID = e.ID
			break
		}
	}
	rec, err := toRecord(rate)
	if err != nil {
		return err
	}
	_, err = r.store.Put(CollectionRates, rec)
	return err
}

func validateRate(key string, value float64) error {
	if err := validateAmount(value); err != nil {
		return &ValidationError{Field: key, Reason: "must be a positive number"}
	}
	return nil
}

// rateValue parses a stored rate value in any of its historical forms.
func rateValue(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("unsupported value type %T", v)
}
