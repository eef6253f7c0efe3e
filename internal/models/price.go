package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is maintained by the external price feed; read-only here.
type PriceQuote struct {
	CoinSymbol  string              `json:"coin_symbol"`
	PriceUSD    decimal.NullDecimal `json:"price_usd"`
	PriceEUR    decimal.NullDecimal `json:"price_eur"`
	LastUpdated time.Time           `json:"last_updated"`
}

// HeldSymbol is a coin symbol held by at least one user
type HeldSymbol struct {
	CoinSymbol string `json:"coin_symbol"`
}
