package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultNetwork is used when a holding is submitted without a network.
const DefaultNetwork = "default"

// Holding is a quantity of one coin inside one wallet.
// (wallet_id, coin_symbol, network) is unique.
type Holding struct {
	ID          int64           `json:"holding_id"`
	WalletID    int64           `json:"wallet_id"`
	CoinSymbol  string          `json:"coin_symbol"`
	Amount      decimal.Decimal `json:"amount"`
	Network     string          `json:"network"`
	LastUpdated time.Time       `json:"last_updated"`
}

// ValuedHolding is a holding joined with its current price.
// Values are derived, never stored.
type ValuedHolding struct {
	Holding
	PriceUSD decimal.NullDecimal `json:"price_usd"`
	PriceEUR decimal.NullDecimal `json:"price_eur"`
	ValueUSD decimal.Decimal     `json:"value_usd"`
	ValueEUR decimal.Decimal     `json:"value_eur"`
}

// UpsertHoldingRequest - what client sends to add or replace a holding
type UpsertHoldingRequest struct {
	CoinSymbol string           `json:"coin_symbol" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	Network    string           `json:"network"`
}
