package wallet

import (
	"github.com/shopspring/decimal"
)

// NisaabGoldGrams is the zakat threshold: the value of 85 grams of gold
// priced in the base currency.
const NisaabGoldGrams = 85

// zakatRate is the share due on liable net assets, 2.5%.
var zakatRate = decimal.NewFromFloat(0.025)

// ZakatReport is the outcome of the zakat computation. All figures are in the
// base currency, unrounded.
type ZakatReport struct {
	TotalAssetsYER    decimal.Decimal
	TotalDebtsByMeYER decimal.Decimal
	NetAssets         decimal.Decimal
	NisaabValue       decimal.Decimal
	ZakatDue          decimal.Decimal
	Liable            bool
}

// ComputeZakat applies the zakat rule to already-aggregated totals.
// nisaabRate is the gold price per gram in the base currency. Liability is
// inclusive: net assets exactly at the nisaab are liable.
func ComputeZakat(totalAssetsYER, totalDebtsByMeYER decimal.Decimal, nisaabRate float64) ZakatReport {
	net := totalAssetsYER.Sub(totalDebtsByMeYER)
	nisaab := decimal.NewFromFloat(nisaabRate).Mul(decimal.NewFromInt(NisaabGoldGrams))

	r := ZakatReport{
		TotalAssetsYER:    totalAssetsYER,
		TotalDebtsByMeYER: totalDebtsByMeYER,
		NetAssets:         net,
		NisaabValue:       nisaab,
		ZakatDue:          decimal.Zero,
	}
	if net.GreaterThanOrEqual(nisaab) {
		r.Liable = true
		r.ZakatDue = net.Mul(zakatRate)
	}
	return r
}
