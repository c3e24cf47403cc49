package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	debts bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list assets or debts" }
func (*listCmd) Usage() string {
	return `yw list [-debts]

  Lists every asset, or every debt with -debts.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.debts, "debts", false, "List debts instead of assets.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.debts {
		debts, err := w.Debts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading debts: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.DebtsMarkdown(debts))
		return subcommands.ExitSuccess
	}

	assets, err := w.Assets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading assets: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AssetsMarkdown(assets))
	return subcommands.ExitSuccess
}
