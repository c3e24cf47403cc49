package wallet

import (
	"context"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// Wallet wires the record store, rate registry, totals cache, backup manager
// and settings of one wallet directory. Every mutation of assets, debts and
// rates goes through it, so the totals cache is invalidated from a single
// place instead of whichever code path happens to write.
type Wallet struct {
	Store    *Store
	Rates    *RateRegistry
	Totals   *TotalsCache
	Backups  *BackupManager
	Settings *Settings
}

// Open opens the wallet rooted at dir, creating it on first run, and loads
// the rate registry so conversions are immediately available.
func Open(dir string) (*Wallet, error) {
	store, err := OpenStore(dir)
	if err != nil {
		return nil, err
	}
	settings, err := LoadSettings(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	rates := NewRateRegistry(store)
	totals := NewTotalsCache(store, rates)
	w := &Wallet{
		Store:    store,
		Rates:    rates,
		Totals:   totals,
		Backups:  NewBackupManager(store, rates, totals, settings),
		Settings: settings,
	}
	if err := rates.Load(); err != nil {
		return nil, err
	}
	return w, nil
}

// Assets returns every asset, ordered by id.
func (w *Wallet) Assets() ([]Asset, error) {
	return decodeAll[Asset](w.Store, CollectionAssets)
}

// Debts returns every debt, ordered by id.
func (w *Wallet) Debts() ([]Debt, error) {
	return decodeAll[Debt](w.Store, CollectionDebts)
}

// PutAsset validates and writes one asset (insert without id, overwrite with
// one), invalidating the totals cache. It returns the assigned id.
func (w *Wallet) PutAsset(a Asset) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	rec, err := toRecord(a)
	if err != nil {
		return 0, err
	}
	id, err := w.Store.Put(CollectionAssets, rec)
	if err != nil {
		return 0, err
	}
	w.Totals.Invalidate()
	return id, nil
}

// DeleteAsset removes one asset and invalidates the totals cache.
func (w *Wallet) DeleteAsset(id int64) error {
	if err := w.Store.Delete(CollectionAssets, id); err != nil {
		return err
	}
	w.Totals.Invalidate()
	return nil
}

// PutDebt validates and writes one debt. Debts do not feed the totals cache,
// so no invalidation happens.
func (w *Wallet) PutDebt(d Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	rec, err := toRecord(d)
	if err != nil {
		return 0, err
	}
	return w.Store.Put(CollectionDebts, rec)
}

// DeleteDebt removes one debt.
func (w *Wallet) DeleteDebt(id int64) error {
	return w.Store.Delete(CollectionDebts, id)
}

// SaveRates persists the three conversion rates with their update stamp and
// invalidates the totals cache.
func (w *Wallet) SaveRates(usd, sar, gold float64) error {
	if err := w.Rates.SaveRates(usd, sar, gold); err != nil {
		return err
	}
	w.Totals.Invalidate()
	return nil
}

// SetRate persists a single conversion rate and invalidates the totals cache.
func (w *Wallet) SetRate(key string, value float64) error {
	if err := w.Rates.Set(key, value); err != nil {
		return err
	}
	w.Totals.Invalidate()
	return nil
}

// Zakat aggregates the live collections and applies the zakat rule: assets
// minus debts owed by the user, against the nisaab of 85 grams of gold.
func (w *Wallet) Zakat(ctx context.Context) (ZakatReport, error) {
	if err := w.Rates.Wait(ctx); err != nil {
		return ZakatReport{}, err
	}
	rates := w.Rates.Snapshot()

	assets, err := w.Assets()
	if err != nil {
		return ZakatReport{}, err
	}
	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(decimal.NewFromFloat(rates.ConvertToYER(a.Value, a.Currency, a.Type)))
	}

	debts, err := w.Debts()
	if err != nil {
		return ZakatReport{}, err
	}
	debtsByMe := decimal.Zero
	for _, d := range debts {
		if d.Type != OwedByMe {
			continue
		}
		debtsByMe = debtsByMe.Add(decimal.NewFromFloat(rates.ConvertToYER(d.Value, d.Currency, KindCash)))
	}

	return ComputeZakat(totalAssets, debtsByMe, rates.GoldPerGramYER), nil
}

// Reset drops every collection for the full-wipe path. It clears the two
// gold gram settings but leaves the auto-backup toggle untouched, so a
// freshly wiped wallet still gets auto-backed-up.
func (w *Wallet) Reset() error {
	if err := w.Store.DeleteAll(); err != nil {
		return err
	}
	w.Settings.GoldGrams24 = 0
	w.Settings.GoldGrams21 = 0
	if err := w.Settings.Save(); err != nil {
		return err
	}
	w.Totals.Invalidate()
	return w.Rates.Load()
}
