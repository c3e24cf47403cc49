package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

// debtCmd holds the flags for the 'debt' subcommand.
type debtCmd struct {
	id       int64
	value    float64
	currency string
	kind     string
}

func (*debtCmd) Name() string     { return "debt" }
func (*debtCmd) Synopsis() string { return "record a debt" }
func (*debtCmd) Usage() string {
	return `yw debt -value <amount> -currency <code> -type owed_by_me|owed_to_me [-id <id>]

  Records a debt in either direction. Only debts you owe reduce the
  zakat net. Passing -id overwrites the existing record.
`
}

func (c *debtCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Record id to overwrite. New record when omitted.")
	f.Float64Var(&c.value, "value", 0, "Amount owed.")
	f.StringVar(&c.currency, "currency", "YER", "Currency code: YER, USD or SAR.")
	f.StringVar(&c.kind, "type", wallet.OwedByMe, "Direction: owed_by_me or owed_to_me.")
}

func (c *debtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	id, err := w.PutDebt(wallet.Debt{ID: c.id, Value: c.value, Currency: c.currency, Type: c.kind})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording debt: %v\n", err)
		return exitStatus(err)
	}
	fmt.Printf("Recorded debt %d.\n", id)
	return subcommands.ExitSuccess
}
