package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// AssetsMarkdown renders the asset list as a table, one row per record.
func AssetsMarkdown(assets []wallet.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Assets")
	if len(assets) == 0 {
		doc.PlainText("No assets recorded.")
		return doc.String()
	}

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.Type,
			assetAmount(a),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Type", "Amount"},
		Rows:   rows,
	})
	return doc.String()
}

// DebtsMarkdown renders the debt list as a table, split by direction.
func DebtsMarkdown(debts []wallet.Debt) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Debts")
	if len(debts) == 0 {
		doc.PlainText("No debts recorded.")
		return doc.String()
	}

	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		dir := "I owe"
		if d.Type == wallet.OwedToMe {
			dir = "owed to me"
		}
		rows = append(rows, []string{
			strconv.FormatInt(d.ID, 10),
			dir,
			wallet.FormatAmount(decimal.NewFromFloat(d.Value), d.Currency),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Direction", "Amount"},
		Rows:   rows,
	})
	return doc.String()
}

// BackupsMarkdown renders the backup list, newest first as given.
func BackupsMarkdown(backups []wallet.BackupSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Backups")
	if len(backups) == 0 {
		doc.PlainText("No backups yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.Timestamp.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d assets, %d debts, %d rates", b.Assets, b.Debts, b.Rates),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Created", "Contents"},
		Rows:   rows,
	})
	return doc.String()
}

func assetAmount(a wallet.Asset) string {
	if a.Type == wallet.KindGold {
		return fmt.Sprintf("%v g", a.Value)
	}
	return wallet.FormatAmount(decimal.NewFromFloat(a.Value), a.Currency)
}
