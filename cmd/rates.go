package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show the conversion rates" }
func (*ratesCmd) Usage() string {
	return `yw rates

  Shows the conversion rates currently in effect.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := w.Rates.Wait(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error waiting for rates: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(w.Rates.Snapshot()))
	return subcommands.ExitSuccess
}
