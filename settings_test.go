package wallet

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSettings_MissingFileDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFile))
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.AutoBackup {
		t.Error("AutoBackup defaults to true, want false")
	}
	if got := s.Interval(); got != DefaultAutoBackupInterval {
		t.Errorf("Interval() = %v, want %v", got, DefaultAutoBackupInterval)
	}
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	s.AutoBackup = true
	s.AutoBackupInterval = "12h"
	s.LastAutoBackup = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s.GoldGrams24 = 10.5
	s.GoldGrams21 = 3
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() after save error: %v", err)
	}
	if !got.AutoBackup || got.GoldGrams24 != 10.5 || got.GoldGrams21 != 3 {
		t.Errorf("reloaded settings = %+v", got)
	}
	if got.Interval() != 12*time.Hour {
		t.Errorf("Interval() = %v, want 12h", got.Interval())
	}
	if !got.LastAutoBackup.Equal(s.LastAutoBackup) {
		t.Errorf("LastAutoBackup = %v, want %v", got.LastAutoBackup, s.LastAutoBackup)
	}
}

func TestSettings_IntervalFallsBackOnGarbage(t *testing.T) {
	for _, in := range []string{"", "soon", "-4h", "0s"} {
		s := &Settings{AutoBackupInterval: in}
		if got := s.Interval(); got != DefaultAutoBackupInterval {
			t.Errorf("Interval(%q) = %v, want the default", in, got)
		}
	}
}

func TestReset_KeepsAutoBackupClearsGoldGrams(t *testing.T) {
	w := newTestWallet(t)
	w.Settings.AutoBackup = true
	w.Settings.GoldGrams24 = 7
	w.Settings.GoldGrams21 = 2
	if err := w.Settings.Save(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.PutAsset(cashYER(1000)); err != nil {
		t.Fatal(err)
	}

	if err := w.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	assets, err := w.Assets()
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 0 {
		t.Errorf("assets after reset = %d records, want 0", len(assets))
	}

	// The auto-backup toggle deliberately survives a wipe; the gold holding
	// weights do not.
	again := reopen(t, w)
	if !again.Settings.AutoBackup {
		t.Error("AutoBackup was cleared by reset, want it kept")
	}
	if again.Settings.GoldGrams24 != 0 || again.Settings.GoldGrams21 != 0 {
		t.Errorf("gold grams after reset = %v/%v, want 0/0",
			again.Settings.GoldGrams24, again.Settings.GoldGrams21)
	}
}
