package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// SettingsFile is the TOML file holding configuration that lives outside the
// record store. Because it is a separate file, it survives a full data
// deletion of the store by design.
const SettingsFile = "settings.toml"

// DefaultAutoBackupInterval gates scheduled backups when the settings file
// does not specify an interval.
const DefaultAutoBackupInterval = 24 * time.Hour

// Settings is the wallet configuration persisted outside the record store:
// the auto-backup policy and the two gold holding weights.
type Settings struct {
	AutoBackup         bool      `toml:"auto_backup"`
	AutoBackupInterval string    `toml:"auto_backup_interval,omitempty"`
	LastAutoBackup     time.Time `toml:"last_auto_backup,omitempty"`
	GoldGrams24        float64   `toml:"gold_grams_24,omitempty"`
	GoldGrams21        float64   `toml:"gold_grams_21,omitempty"`

	path string
}

// LoadSettings reads the settings file, returning zero-value settings when
// the file does not exist yet.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{path: path}
	_, err := toml.DecodeFile(path, s)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read settings %q: %w", path, err)
	}
	return s, nil
}

// Save writes the settings back to their file.
func (s *Settings) Save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("cannot write settings %q: %w", s.path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("cannot encode settings %q: %w", s.path, err)
	}
	return nil
}

// Interval returns the auto-backup policy interval, falling back to the
// default when unset or unparseable.
func (s *Settings) Interval() time.Duration {
	if d, err := time.ParseDuration(s.AutoBackupInterval); err == nil && d > 0 {
		return d
	}
	return DefaultAutoBackupInterval
}
