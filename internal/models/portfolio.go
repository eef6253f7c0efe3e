package models

import "github.com/shopspring/decimal"

// PortfolioRow is one wallet/holding pair of a user's portfolio.
// Holding fields are null for wallets without holdings.
type PortfolioRow struct {
	WalletID   int64               `json:"wallet_id"`
	WalletName string              `json:"wallet_name"`
	WalletType string              `json:"wallet_type"`
	HoldingID  *int64              `json:"holding_id"`
	CoinSymbol *string             `json:"coin_symbol"`
	Amount     decimal.NullDecimal `json:"amount"`
	Network    *string             `json:"network"`
	PriceUSD   decimal.NullDecimal `json:"price_usd"`
	PriceEUR   decimal.NullDecimal `json:"price_eur"`
	ValueUSD   decimal.NullDecimal `json:"value_usd"`
	ValueEUR   decimal.NullDecimal `json:"value_eur"`
}

// Totals are rounded to 2 decimals for display
type Totals struct {
	USD string `json:"usd"`
	EUR string `json:"eur"`
}

// PortfolioResponse - what we send back to client
type PortfolioResponse struct {
	Holdings []PortfolioRow `json:"holdings"`
	Totals   Totals         `json:"totals"`
}
