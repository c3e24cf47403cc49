package wallet

import (
	"cmp"
	"log"
	"slices"
	"time"
)

// Backup is a point-in-time copy of the three primary collections. It owns
// its embedded records: editing a live asset after the backup was written
// never changes the backup. Backups are immutable once stored; restore reads
// them but never rewrites them.
type Backup struct {
	ID        int64   `json:"id,omitempty"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
	Assets    []Asset `json:"assets"`
	Debts     []Debt  `json:"debts"`
	Rates     []Rate  `json:"rates"`
}

// BackupSummary describes one stored backup for listing.
type BackupSummary struct {
	ID        int64
	Timestamp time.Time
	Assets    int
	Debts     int
	Rates     int
}

// BackupManager creates, lists, restores and deletes wallet backups, and
// runs the scheduled backup policy. Every restore path invalidates the
// totals cache and reloads the rate registry, so a restore is reflected in
// the next displayed totals.
type BackupManager struct {
	store    *Store
	rates    *RateRegistry
	totals   *TotalsCache
	settings *Settings

	now func() time.Time
}

// NewBackupManager wires a manager over the store and the caches it must keep
// honest.
func NewBackupManager(store *Store, rates *RateRegistry, totals *TotalsCache, settings *Settings) *BackupManager {
	return &BackupManager{
		store:    store,
		rates:    rates,
		totals:   totals,
		settings: settings,
		now:      time.Now,
	}
}

// Create reads assets, debts and rates in full, assembles a backup stamped
// with the current time, writes it to the backups collection and returns its
// id. The snapshot is best-effort: a write racing the three reads may leave a
// partial view of its collection, there is no store-level transaction.
func (m *BackupManager) Create() (int64, error) {
	assets, err := decodeAll[Asset](m.store, CollectionAssets)
	if err != nil {
		return 0, err
	}
	debts, err := decodeAll[Debt](m.store, CollectionDebts)
	if err != nil {
		return 0, err
	}
	rates, err := decodeAll[Rate](m.store, CollectionRates)
	if err != nil {
		return 0, err
	}

	b := Backup{
		Timestamp: m.now().UnixMilli(),
		Assets:    assets,
		Debts:     debts,
		Rates:     rates,
	}
	rec, err := toRecord(b)
	if err != nil {
		return 0, err
	}
	return m.store.Put(CollectionBackups, rec)
}

// Get loads one backup by id.
func (m *BackupManager) Get(id int64) (Backup, error) {
	rec, err := m.store.Get(CollectionBackups, id)
	if err != nil {
		return Backup{}, err
	}
	var b Backup
	if err := fromRecord(rec, &b); err != nil {
		return Backup{}, err
	}
	return b, nil
}

// List returns a summary of every backup, newest first. Backups stamped at
// the same millisecond order by id, the later insertion first.
func (m *BackupManager) List() ([]BackupSummary, error) {
	backups, err := decodeAll[Backup](m.store, CollectionBackups)
	if err != nil {
		return nil, err
	}
	sums := make([]BackupSummary, 0, len(backups))
	for _, b := range backups {
		sums = append(sums, BackupSummary{
			ID:        b.ID,
			Timestamp: time.UnixMilli(b.Timestamp),
			Assets:    len(b.Assets),
			Debts:     len(b.Debts),
			Rates:     len(b.Rates),
		})
	}
	slices.SortStableFunc(sums, func(a, b BackupSummary) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return sums, nil
}

// Restore writes every record of the backup back into the live collections,
// overwriting by id. When a collection fails partway, the collections
// already written stay restored (no rollback) and the returned
// PartialRestoreError names the failing one so the caller can retry; restore
// overwrites rather than deletes, so nothing is lost by the partial apply.
// Whenever anything was written, the totals cache is invalidated and the
// rates reloaded.
func (m *BackupManager) Restore(id int64) error {
	b, err := m.Get(id)
	if err != nil {
		return err
	}
	return m.restoreCollections(b.Assets, b.Debts, b.Rates)
}

// restoreCollections applies records to the three primary collections in
// order, with the shared partial-failure and invalidation semantics of
// Restore and Import.
func (m *BackupManager) restoreCollections(assets []Asset, debts []Debt, rates []Rate) (err error) {
	wrote := false
	defer func() {
		if wrote {
			m.invalidate()
		}
	}()

	parts := []struct {
		name string
		recs func() ([]Record, error)
	}{
		{CollectionAssets, func() ([]Record, error) { return toRecords(assets) }},
		{CollectionDebts, func() ([]Record, error) { return toRecords(debts) }},
		{CollectionRates, func() ([]Record, error) { return toRecords(rates) }},
	}
	for _, part := range parts {
		recs, err := part.recs()
		if err != nil {
			return &PartialRestoreError{Collection: part.name, Err: err}
		}
		for _, rec := range recs {
			if _, err := m.store.Put(part.name, rec); err != nil {
				return &PartialRestoreError{Collection: part.name, Err: err}
			}
			wrote = true
		}
	}
	return nil
}

// invalidate keeps the derived views honest after writes to the primary
// collections.
func (m *BackupManager) invalidate() {
	m.totals.Invalidate()
	if err := m.rates.Load(); err != nil {
		log.Printf("warning: reloading rates after restore: %v", err)
	}
}

// Delete removes one backup record. The primary collections are untouched.
// Deleting a missing backup reports ErrRecordNotFound.
func (m *BackupManager) Delete(id int64) error {
	return m.store.Delete(CollectionBackups, id)
}

// AutoRun applies the scheduled backup policy. It is idempotent and safe to
// invoke on every application start: a backup is created only when the
// persisted toggle is on and the policy interval has elapsed since the last
// automatic run. It reports whether a backup was created.
func (m *BackupManager) AutoRun() (bool, error) {
	if !m.settings.AutoBackup {
		return false, nil
	}
	now := m.now()
	if !m.settings.LastAutoBackup.IsZero() && now.Sub(m.settings.LastAutoBackup) < m.settings.Interval() {
		return false, nil
	}
	if _, err := m.Create(); err != nil {
		return false, err
	}
	m.settings.LastAutoBackup = now
	if err := m.settings.Save(); err != nil {
		return true, err
	}
	return true, nil
}
