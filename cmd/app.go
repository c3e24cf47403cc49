// Package cmd implements the CLI application to manage a wallet.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var walletPath = flag.String("wallet-path", defaultWalletPath(), "Path to the wallet directory")

func defaultWalletPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wallet"
	}
	return filepath.Join(home, ".wallet")
}

// Commands lists every subcommand for registration by a main package.
var Commands = []subcommands.Command{
	&addCmd{},
	&debtCmd{},
	&listCmd{},
	&rmCmd{},
	&ratesCmd{},
	&updateCmd{},
	&summaryCmd{},
	&zakatCmd{},
	&backupCmd{},
	&backupsCmd{},
	&restoreCmd{},
	&rmBackupCmd{},
	&exportCmd{},
	&importCmd{},
	&autobackupCmd{},
	&resetCmd{},
	&topicCmd{},
}

// exitStatus classifies a write error: rejected user input is a usage error,
// anything else (storage, corruption) a plain failure.
func exitStatus(err error) subcommands.ExitStatus {
	var verr *wallet.ValidationError
	if errors.As(err, &verr) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// OpenWallet opens the wallet directory and applies the scheduled backup
// policy, so every command run doubles as the scheduler tick.
func OpenWallet() (*wallet.Wallet, error) {
	w, err := wallet.Open(*walletPath)
	if err != nil {
		return nil, err
	}
	ran, err := w.Backups.AutoRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scheduled backup failed: %v\n", err)
	} else if ran {
		fmt.Fprintln(os.Stderr, "Scheduled backup created.")
	}
	return w, nil
}
