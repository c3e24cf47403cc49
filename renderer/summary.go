// Package renderer formats wallet reports as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// SummaryMarkdown renders the aggregate totals in the three display
// currencies, with the freshness stamp of the rates they were computed from.
func SummaryMarkdown(t wallet.Totals, rates wallet.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Wallet Summary")

	table := md.TableSet{
		Header: []string{"Currency", "Total"},
		Rows: [][]string{
			{"Riyal (Yemeni)", t.YER},
			{"Riyal (Saudi)", t.SAR},
			{"Dollar", t.USD},
		},
	}
	doc.Table(table)

	if rates.LastUpdate.IsZero() {
		doc.PlainText("Rates: defaults, never updated.")
	} else {
		doc.PlainText(fmt.Sprintf("Rates updated %s.", rates.LastUpdate.Format("2006-01-02 15:04")))
	}

	return doc.String()
}

// RatesMarkdown renders the conversion rates currently in effect.
func RatesMarkdown(rates wallet.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Conversion Rates")

	table := md.TableSet{
		Header: []string{"Rate", "YER"},
		Rows: [][]string{
			{"1 USD", wallet.FormatAmount(decimal.NewFromFloat(rates.USDToYER), "YER")},
			{"1 SAR", wallet.FormatAmount(decimal.NewFromFloat(rates.SARToYER), "YER")},
			{"1 g gold", wallet.FormatAmount(decimal.NewFromFloat(rates.GoldPerGramYER), "YER")},
		},
	}
	doc.Table(table)

	return doc.String()
}
