package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

// autobackupCmd holds the flags for the 'autobackup' subcommand.
type autobackupCmd struct {
	on       bool
	off      bool
	interval string
}

func (*autobackupCmd) Name() string     { return "autobackup" }
func (*autobackupCmd) Synopsis() string { return "configure scheduled backups" }
func (*autobackupCmd) Usage() string {
	return `yw autobackup [-on|-off] [-interval <duration>]

  Turns the scheduled backup policy on or off and sets its interval.
  With the policy on, every command run creates a backup once the
  interval has elapsed since the last automatic one. Without flags the
  current configuration is shown.
`
}

func (c *autobackupCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.on, "on", false, "Turn scheduled backups on.")
	f.BoolVar(&c.off, "off", false, "Turn scheduled backups off.")
	f.StringVar(&c.interval, "interval", "", "Backup interval, e.g. 24h or 12h.")
}

func (c *autobackupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.on && c.off {
		fmt.Fprintln(os.Stderr, "Error: -on and -off are mutually exclusive.")
		return subcommands.ExitUsageError
	}
	if c.interval != "" {
		if d, err := time.ParseDuration(c.interval); err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "Error: invalid interval %q.\n", c.interval)
			return subcommands.ExitUsageError
		}
	}

	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	if c.on {
		w.Settings.AutoBackup = true
		changed = true
	}
	if c.off {
		w.Settings.AutoBackup = false
		changed = true
	}
	if c.interval != "" {
		w.Settings.AutoBackupInterval = c.interval
		changed = true
	}
	if changed {
		if err := w.Settings.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	state := "off"
	if w.Settings.AutoBackup {
		state = "on"
	}
	fmt.Printf("Scheduled backups: %s, every %s.\n", state, w.Settings.Interval())
	if !w.Settings.LastAutoBackup.IsZero() {
		fmt.Printf("Last automatic backup: %s.\n", w.Settings.LastAutoBackup.Format("2006-01-02 15:04"))
	}
	return subcommands.ExitSuccess
}
