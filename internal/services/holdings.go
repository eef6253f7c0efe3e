package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/atharvakonge/crypto-portfolio-api/internal/portfolio"
	"github.com/shopspring/decimal"
)

// Bounds of the holdings.amount column, NUMERIC(38,18).
const maxAmountScale = 18

var maxAmount = decimal.New(1, 38-maxAmountScale)

type WalletOwnership interface {
	GetOwned(ctx context.Context, ownerID, walletID int64) (*models.Wallet, error)
}

type HoldingStore interface {
	ListForWallet(ctx context.Context, walletID int64) ([]models.ValuedHolding, error)
	Upsert(ctx context.Context, walletID int64, symbol string, amount decimal.Decimal, network string) (*models.Holding, error)
	Delete(ctx context.Context, walletID, holdingID int64) error
}

// HoldingService scopes every holding operation to a wallet the caller owns.
type HoldingService struct {
	wallets  WalletOwnership
	holdings HoldingStore
}

func NewHoldingService(wallets WalletOwnership, holdings HoldingStore) *HoldingService {
	return &HoldingService{wallets: wallets, holdings: holdings}
}

func (s *HoldingService) requireWallet(ctx context.Context, userID, walletID int64) error {
	if _, err := s.wallets.GetOwned(ctx, userID, walletID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errWalletNotFound
		}
		return fmt.Errorf("check wallet: %w", err)
	}
	return nil
}

// List returns the wallet's holdings valued at current prices.
func (s *HoldingService) List(ctx context.Context, userID, walletID int64) ([]models.ValuedHolding, error) {
	if err := s.requireWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	holdings, err := s.holdings.ListForWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}

	portfolio.ValueHoldings(holdings)
	return holdings, nil
}

// Upsert sets the amount held for (wallet, symbol, network). The symbol is
// uppercased and an empty network becomes models.DefaultNetwork.
func (s *HoldingService) Upsert(ctx context.Context, userID, walletID int64, req models.UpsertHoldingRequest) (*models.Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.CoinSymbol))
	if symbol == "" || req.Amount == nil {
		return nil, common.Validation("coin_symbol and amount are required")
	}
	if req.Amount.IsNegative() {
		return nil, common.Validation("amount must not be negative")
	}
	if req.Amount.GreaterThanOrEqual(maxAmount) {
		return nil, common.Validation("amount is too large")
	}
	if !req.Amount.Equal(req.Amount.Truncate(maxAmountScale)) {
		return nil, common.Validation(fmt.Sprintf("amount must have at most %d decimal places", maxAmountScale))
	}

	network := strings.TrimSpace(req.Network)
	if network == "" {
		network = models.DefaultNetwork
	}

	if err := s.requireWallet(ctx, userID, walletID); err != nil {
		return nil, err
	}

	h, err := s.holdings.Upsert(ctx, walletID, symbol, *req.Amount, network)
	if err != nil {
		return nil, fmt.Errorf("upsert holding: %w", err)
	}
	return h, nil
}

func (s *HoldingService) Delete(ctx context.Context, userID, walletID, holdingID int64) error {
	if err := s.requireWallet(ctx, userID, walletID); err != nil {
		return err
	}

	if err := s.holdings.Delete(ctx, walletID, holdingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("holding not found")
		}
		return fmt.Errorf("delete holding: %w", err)
	}
	return nil
}
