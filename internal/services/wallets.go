package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

type WalletStore interface {
	List(ctx context.Context, ownerID int64) ([]models.Wallet, error)
	Create(ctx context.Context, ownerID int64, name, walletType string) (*models.Wallet, error)
	GetOwned(ctx context.Context, ownerID, walletID int64) (*models.Wallet, error)
	Delete(ctx context.Context, ownerID, walletID int64) error
}

var errWalletNotFound = common.NotFound("wallet not found")

type WalletService struct {
	wallets WalletStore
}

func NewWalletService(wallets WalletStore) *WalletService {
	return &WalletService{wallets: wallets}
}

func (s *WalletService) List(ctx context.Context, userID int64) ([]models.Wallet, error) {
	wallets, err := s.wallets.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

func (s *WalletService) Create(ctx context.Context, userID int64, req models.CreateWalletRequest) (*models.Wallet, error) {
	name := strings.TrimSpace(req.Name)
	walletType := strings.TrimSpace(req.Type)
	if name == "" || walletType == "" {
		return nil, common.Validation("name and type are required")
	}

	w, err := s.wallets.Create(ctx, userID, name, walletType)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("a wallet with this name already exists")
		}
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return w, nil
}

// Delete removes the wallet and its holdings. A wallet owned by someone
// else is reported exactly like a missing one.
func (s *WalletService) Delete(ctx context.Context, userID, walletID int64) error {
	if err := s.wallets.Delete(ctx, userID, walletID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errWalletNotFound
		}
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}
