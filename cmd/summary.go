package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	noCache bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the wallet totals" }
func (*summaryCmd) Usage() string {
	return `yw summary [-no-cache]

  Displays the aggregate totals in YER, SAR and USD, with the freshness
  of the rates they were computed from.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noCache, "no-cache", false, "Recompute instead of using the cached totals.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	totals, err := w.Totals.Totals(ctx, !c.noCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing totals: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(totals, w.Rates.Snapshot()))
	return subcommands.ExitSuccess
}
