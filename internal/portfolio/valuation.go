// Package portfolio derives holding valuations from live prices.
//
// Valuations are computed on every read and never stored: a holding is
// worth amount × price, with a missing price counting as zero. Per-row
// values keep full precision; only totals are rounded, to two places.
package portfolio

import (
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/shopspring/decimal"
)

// TotalsPlaces is the number of decimals totals are rounded to.
const TotalsPlaces = 2

// Value returns amount × price, treating an absent price as zero.
func Value(amount decimal.Decimal, price decimal.NullDecimal) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	return amount.Mul(price.Decimal)
}

// ValueHoldings fills in ValueUSD/ValueEUR on each holding in place.
func ValueHoldings(holdings []models.ValuedHolding) {
	for i := range holdings {
		h := &holdings[i]
		h.ValueUSD = Value(h.Amount, h.PriceUSD)
		h.ValueEUR = Value(h.Amount, h.PriceEUR)
	}
}

// Summarize values every row that has a holding and returns the rounded
// totals. Rows without a holding keep null values and add nothing.
func Summarize(rows []models.PortfolioRow) models.Totals {
	usd, eur := decimal.Zero, decimal.Zero

	for i := range rows {
		row := &rows[i]
		if !row.Amount.Valid {
			row.ValueUSD = decimal.NullDecimal{}
			row.ValueEUR = decimal.NullDecimal{}
			continue
		}

		row.ValueUSD = decimal.NewNullDecimal(Value(row.Amount.Decimal, row.PriceUSD))
		row.ValueEUR = decimal.NewNullDecimal(Value(row.Amount.Decimal, row.PriceEUR))

		usd = usd.Add(row.ValueUSD.Decimal)
		eur = eur.Add(row.ValueEUR.Decimal)
	}

	return models.Totals{
		USD: usd.StringFixed(TotalsPlaces),
		EUR: eur.StringFixed(TotalsPlaces),
	}
}
