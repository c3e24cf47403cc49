package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct {
	id   int64
	debt bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove an asset or a debt" }
func (*rmCmd) Usage() string {
	return `yw rm -id <id> [-debt]

  Removes one asset by id, or one debt with -debt.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Record id to remove.")
	f.BoolVar(&c.debt, "debt", false, "Remove a debt instead of an asset.")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.debt {
		err = w.DeleteDebt(c.id)
	} else {
		err = w.DeleteAsset(c.id)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing record %d: %v\n", c.id, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed record %d.\n", c.id)
	return subcommands.ExitSuccess
}
