package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	id       int64
	value    float64
	currency string
	kind     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an asset" }
func (*addCmd) Usage() string {
	return `yw add -value <amount> [-currency <code>] [-type cash|gold] [-id <id>]

  Records a cash or gold asset. Gold values are weights in grams and need
  no currency. Passing -id overwrites the existing record.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Record id to overwrite. New record when omitted.")
	f.Float64Var(&c.value, "value", 0, "Amount, or weight in grams for gold.")
	f.StringVar(&c.currency, "currency", "YER", "Currency code: YER, USD or SAR.")
	f.StringVar(&c.kind, "type", wallet.KindCash, "Asset type: cash or gold.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	a := wallet.Asset{ID: c.id, Value: c.value, Currency: c.currency, Type: c.kind}
	if a.Type == wallet.KindGold {
		a.Currency = ""
	}
	id, err := w.PutAsset(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording asset: %v\n", err)
		return exitStatus(err)
	}
	fmt.Printf("Recorded asset %d.\n", id)
	return subcommands.ExitSuccess
}
