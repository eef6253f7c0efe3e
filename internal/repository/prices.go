package repository

import (
	"context"
	"fmt"

	"github.com/atharvakonge/crypto-portfolio-api/internal/db"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

// PriceRepository reads the crypto_prices table, which an external
// feed keeps up to date.
type PriceRepository struct {
	db db.DBTX
}

func NewPriceRepository(conn db.DBTX) *PriceRepository {
	return &PriceRepository{db: conn}
}

// List returns every quote ordered by symbol.
func (r *PriceRepository) List(ctx context.Context) ([]models.PriceQuote, error) {
	return r.list(ctx, "coin_symbol")
}

// ListByFreshness returns every quote, most recently updated first.
func (r *PriceRepository) ListByFreshness(ctx context.Context) ([]models.PriceQuote, error) {
	return r.list(ctx, "last_updated DESC")
}

func (r *PriceRepository) list(ctx context.Context, orderBy string) ([]models.PriceQuote, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT coin_symbol, price_usd, price_eur, last_updated FROM crypto_prices ORDER BY "+orderBy)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	quotes := make([]models.PriceQuote, 0)
	for rows.Next() {
		var q models.PriceQuote
		if err := rows.Scan(&q.CoinSymbol, &q.PriceUSD, &q.PriceEUR, &q.LastUpdated); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return quotes, nil
}

// HeldSymbols lists the distinct symbols held by any user, so the feed
// knows which prices to fetch.
func (r *PriceRepository) HeldSymbols(ctx context.Context) ([]models.HeldSymbol, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT coin_symbol FROM holdings ORDER BY coin_symbol")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	symbols := make([]models.HeldSymbol, 0)
	for rows.Next() {
		var s models.HeldSymbol
		if err := rows.Scan(&s.CoinSymbol); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return symbols, nil
}
