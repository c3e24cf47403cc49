package wallet

import (
	"path/filepath"
	"testing"
)

// newTestWallet opens a fresh wallet in a temporary directory.
func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	w, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return w
}

// reopen opens a second wallet over the same directory, simulating a process
// restart.
func reopen(t *testing.T, w *Wallet) *Wallet {
	t.Helper()
	again, err := Open(w.Store.Dir())
	if err != nil {
		t.Fatalf("Open() after reopen error: %v", err)
	}
	return again
}

// cashYER is a helper to create a cash asset in the base currency.
func cashYER(v float64) Asset { return Asset{Value: v, Currency: "YER", Type: KindCash} }

// cashUSD is a helper to create a cash asset in dollars.
func cashUSD(v float64) Asset { return Asset{Value: v, Currency: "USD", Type: KindCash} }

// settingsPath returns the settings file path of a wallet.
func settingsPath(w *Wallet) string {
	return filepath.Join(w.Store.Dir(), SettingsFile)
}
