package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// resetCmd holds the flags for the 'reset' subcommand.
type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete every record" }
func (*resetCmd) Usage() string {
	return `yw reset -force

  Deletes every record of every collection, backups included, and
  clears the gold holding settings. The scheduled backup configuration
  is kept. Requires -force.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Confirm the deletion.")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Fprintln(os.Stderr, "Refusing to delete everything without -force.")
		return subcommands.ExitUsageError
	}

	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := w.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Wallet reset.")
	return subcommands.ExitSuccess
}
