package renderer

import (
	"bytes"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
)

// ZakatMarkdown renders a zakat report with whole-figure amounts.
func ZakatMarkdown(r wallet.ZakatReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Zakat")

	doc.Table(md.TableSet{
		Header: []string{"", "YER"},
		Rows: [][]string{
			{"Total assets", wallet.FormatAmountRounded(r.TotalAssetsYER, "YER", 0)},
			{"Debts I owe", wallet.FormatAmountRounded(r.TotalDebtsByMeYER, "YER", 0)},
			{"Net assets", wallet.FormatAmountRounded(r.NetAssets, "YER", 0)},
			{"Nisaab (85 g gold)", wallet.FormatAmountRounded(r.NisaabValue, "YER", 0)},
		},
	})

	if r.Liable {
		doc.PlainText("Zakat is due: " + wallet.FormatAmountRounded(r.ZakatDue, "YER", 0) + ".")
	} else {
		doc.PlainText("Net assets are below the nisaab. No zakat is due.")
	}

	return doc.String()
}
