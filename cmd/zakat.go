package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type zakatCmd struct{}

func (*zakatCmd) Name() string     { return "zakat" }
func (*zakatCmd) Synopsis() string { return "compute the zakat figure" }
func (*zakatCmd) Usage() string {
	return `yw zakat

  Computes the zakat due from assets minus the debts you owe, against
  the nisaab of 85 grams of gold at the stored gold rate.
`
}

func (c *zakatCmd) SetFlags(f *flag.FlagSet) {}

func (c *zakatCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := w.Zakat(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing zakat: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ZakatMarkdown(report))
	return subcommands.ExitSuccess
}
