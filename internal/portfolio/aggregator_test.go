package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRowSource struct {
	rows   []models.PortfolioRow
	err    error
	gotUID int64
}

func (f *fakeRowSource) Rows(ctx context.Context, userID int64) ([]models.PortfolioRow, error) {
	f.gotUID = userID
	return f.rows, f.err
}

func TestAggregator_Portfolio(t *testing.T) {
	src := &fakeRowSource{rows: []models.PortfolioRow{
		holdingRow("BTC", "0.5", nd("60000"), nd("55000")),
	}}

	p, err := NewAggregator(src).Portfolio(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), src.gotUID)
	require.Len(t, p.Holdings, 1)
	assert.Equal(t, "30000", p.Holdings[0].ValueUSD.Decimal.String())
	assert.Equal(t, models.Totals{USD: "30000.00", EUR: "27500.00"}, p.Totals)
}

func TestAggregator_SourceError(t *testing.T) {
	boom := errors.New("db down")

	_, err := NewAggregator(&fakeRowSource{err: boom}).Portfolio(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
