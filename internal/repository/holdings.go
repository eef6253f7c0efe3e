package repository

import (
	"context"
	"fmt"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/db"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/shopspring/decimal"
)

// HoldingRepository does not check ownership; callers go through
// WalletRepository.GetOwned first.
type HoldingRepository struct {
	db db.DBTX
}

func NewHoldingRepository(conn db.DBTX) *HoldingRepository {
	return &HoldingRepository{db: conn}
}

// ListForWallet returns the wallet's holdings joined with current prices,
// ordered by symbol. Values are left for the caller to derive.
func (r *HoldingRepository) ListForWallet(ctx context.Context, walletID int64) ([]models.ValuedHolding, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT h.holding_id, h.wallet_id, h.coin_symbol, h.amount, h.network, h.last_updated,
               cp.price_usd, cp.price_eur
        FROM holdings h
        LEFT JOIN crypto_prices cp ON h.coin_symbol = cp.coin_symbol
        WHERE h.wallet_id = $1
        ORDER BY h.coin_symbol
    `, walletID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	holdings := make([]models.ValuedHolding, 0)
	for rows.Next() {
		var h models.ValuedHolding
		err := rows.Scan(&h.ID, &h.WalletID, &h.CoinSymbol, &h.Amount, &h.Network, &h.LastUpdated,
			&h.PriceUSD, &h.PriceEUR)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return holdings, nil
}

// Upsert inserts the holding or, when (wallet, symbol, network) already
// exists, replaces its amount. The unique constraint makes this atomic.
func (r *HoldingRepository) Upsert(ctx context.Context, walletID int64, symbol string, amount decimal.Decimal, network string) (*models.Holding, error) {
	h := &models.Holding{}
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO holdings (wallet_id, coin_symbol, amount, network, last_updated)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (wallet_id, coin_symbol, network)
        DO UPDATE SET
            amount = EXCLUDED.amount,
            last_updated = NOW()
        RETURNING holding_id, wallet_id, coin_symbol, amount, network, last_updated
    `, walletID, symbol, amount, network).
		Scan(&h.ID, &h.WalletID, &h.CoinSymbol, &h.Amount, &h.Network, &h.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return h, nil
}

// Delete removes a holding of the wallet; common.ErrNotFound when there is none.
func (r *HoldingRepository) Delete(ctx context.Context, walletID, holdingID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM holdings WHERE holding_id = $1 AND wallet_id = $2",
		holdingID, walletID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
