package cmd

import (
	"context"
	"flag"
	"fmt"
	"testing"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

// run executes one subcommand with the given arguments against a wallet in a
// temporary directory.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %s flags: %v", c.Name(), err)
	}
	return c.Execute(context.Background(), f)
}

func TestCommands_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	old := *walletPath
	*walletPath = dir
	t.Cleanup(func() { *walletPath = old })

	if got := run(t, &addCmd{}, "-value", "1000", "-currency", "YER"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v, want success", got)
	}
	if got := run(t, &debtCmd{}, "-value", "10", "-currency", "USD", "-type", "owed_by_me"); got != subcommands.ExitSuccess {
		t.Fatalf("debt = %v, want success", got)
	}
	if got := run(t, &updateCmd{}, "-usd", "540", "-sar", "144", "-gold", "95000"); got != subcommands.ExitSuccess {
		t.Fatalf("update = %v, want success", got)
	}
	if got := run(t, &summaryCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("summary = %v, want success", got)
	}
	if got := run(t, &backupCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("backup = %v, want success", got)
	}
	if got := run(t, &restoreCmd{}, "-id", "1"); got != subcommands.ExitSuccess {
		t.Fatalf("restore = %v, want success", got)
	}
	if got := run(t, &rmCmd{}, "-id", "1"); got != subcommands.ExitSuccess {
		t.Fatalf("rm = %v, want success", got)
	}
}

func TestCommands_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	old := *walletPath
	*walletPath = dir
	t.Cleanup(func() { *walletPath = old })

	if got := run(t, &addCmd{}, "-value", "-5"); got != subcommands.ExitUsageError {
		t.Errorf("add with a negative value = %v, want usage error", got)
	}
	if got := run(t, &updateCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("update without flags = %v, want usage error", got)
	}
	if got := run(t, &resetCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("reset without -force = %v, want usage error", got)
	}
}

func TestExitStatus_Classification(t *testing.T) {
	verr := fmt.Errorf("wrapped: %w", &wallet.ValidationError{Field: "value", Reason: "must be a positive number"})
	if got := exitStatus(verr); got != subcommands.ExitUsageError {
		t.Errorf("exitStatus(ValidationError) = %v, want usage error", got)
	}
	if got := exitStatus(wallet.ErrStorageUnavailable); got != subcommands.ExitFailure {
		t.Errorf("exitStatus(ErrStorageUnavailable) = %v, want failure", got)
	}
}

func TestUpdate_RejectedRateIsUsageError(t *testing.T) {
	dir := t.TempDir()
	old := *walletPath
	*walletPath = dir
	t.Cleanup(func() { *walletPath = old })

	if got := run(t, &updateCmd{}, "-usd", "-5"); got != subcommands.ExitUsageError {
		t.Errorf("update with a negative rate = %v, want usage error", got)
	}
}
