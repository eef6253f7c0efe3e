package portfolio

import (
	"context"
	"fmt"

	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

// RowSource yields the joined wallet/holding/price rows of one user.
type RowSource interface {
	Rows(ctx context.Context, userID int64) ([]models.PortfolioRow, error)
}

// Aggregator builds a user's valued portfolio across all wallets.
type Aggregator struct {
	source RowSource
}

func NewAggregator(source RowSource) *Aggregator {
	return &Aggregator{source: source}
}

func (a *Aggregator) Portfolio(ctx context.Context, userID int64) (*models.PortfolioResponse, error) {
	rows, err := a.source.Rows(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load portfolio rows: %w", err)
	}

	if rows == nil {
		rows = []models.PortfolioRow{}
	}
	totals := Summarize(rows)

	return &models.PortfolioResponse{
		Holdings: rows,
		Totals:   totals,
	}, nil
}
