package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atharvakonge/crypto-portfolio-api/internal/db"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

type PortfolioRepository struct {
	db db.DBTX
}

func NewPortfolioRepository(conn db.DBTX) *PortfolioRepository {
	return &PortfolioRepository{db: conn}
}

// Rows outer-joins the user's wallets with their holdings and current
// prices. A wallet without holdings yields one row with null holding
// fields; a missing price yields null prices. Values are not computed here.
func (r *PortfolioRepository) Rows(ctx context.Context, userID int64) ([]models.PortfolioRow, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT w.wallet_id, w.wallet_name, w.wallet_type,
               h.holding_id, h.coin_symbol, h.amount, h.network,
               cp.price_usd, cp.price_eur
        FROM wallets w
        LEFT JOIN holdings h ON w.wallet_id = h.wallet_id
        LEFT JOIN crypto_prices cp ON h.coin_symbol = cp.coin_symbol
        WHERE w.user_id = $1
        ORDER BY w.wallet_name, h.coin_symbol
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.PortfolioRow, 0)
	for rows.Next() {
		var (
			row       models.PortfolioRow
			holdingID sql.NullInt64
			symbol    sql.NullString
			network   sql.NullString
		)

		err := rows.Scan(&row.WalletID, &row.WalletName, &row.WalletType,
			&holdingID, &symbol, &row.Amount, &network,
			&row.PriceUSD, &row.PriceEUR)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if holdingID.Valid {
			row.HoldingID = &holdingID.Int64
		}
		if symbol.Valid {
			row.CoinSymbol = &symbol.String
		}
		if network.Valid {
			row.Network = &network.String
		}

		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
