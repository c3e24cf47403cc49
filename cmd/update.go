package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	usd  float64
	sar  float64
	gold float64
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "update the conversion rates" }
func (*updateCmd) Usage() string {
	return `yw update [-usd <rate>] [-sar <rate>] [-gold <rate>]

  Updates the conversion rates, in YER. Passing all three stamps the
  update time shown by summary; a subset updates only those rates.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.usd, "usd", 0, "YER per USD.")
	f.Float64Var(&c.sar, "sar", 0, "YER per SAR.")
	f.Float64Var(&c.gold, "gold", 0, "YER per gram of gold.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if len(set) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to update, pass -usd, -sar or -gold.")
		return subcommands.ExitUsageError
	}

	w, err := OpenWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	if set["usd"] && set["sar"] && set["gold"] {
		if err := w.SaveRates(c.usd, c.sar, c.gold); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving rates: %v\n", err)
			return exitStatus(err)
		}
		fmt.Println("Rates saved.")
		return subcommands.ExitSuccess
	}

	for _, rate := range []struct {
		flag string
		key  string
		v    float64
	}{
		{"usd", wallet.KeyUSDToYER, c.usd},
		{"sar", wallet.KeySARToYER, c.sar},
		{"gold", wallet.KeyGoldPerGramYER, c.gold},
	} {
		if !set[rate.flag] {
			continue
		}
		if err := w.SetRate(rate.key, rate.v); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting %s rate: %v\n", rate.flag, err)
			return exitStatus(err)
		}
	}
	fmt.Println("Rates saved.")
	return subcommands.ExitSuccess
}
