package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/db"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

type WalletRepository struct {
	db db.Conn
}

func NewWalletRepository(conn db.Conn) *WalletRepository {
	return &WalletRepository{db: conn}
}

// List returns the owner's wallets, newest first.
func (r *WalletRepository) List(ctx context.Context, ownerID int64) ([]models.Wallet, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT wallet_id, user_id, wallet_name, wallet_type, created_at
        FROM wallets
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	wallets := make([]models.Wallet, 0)
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return wallets, nil
}

// Create inserts a wallet. A duplicate (owner, name) yields common.ErrConflict.
func (r *WalletRepository) Create(ctx context.Context, ownerID int64, name, walletType string) (*models.Wallet, error) {
	w := &models.Wallet{}
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO wallets (user_id, wallet_name, wallet_type, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING wallet_id, user_id, wallet_name, wallet_type, created_at
    `, ownerID, name, walletType).Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return w, nil
}

// GetOwned returns the wallet only if ownerID owns it; otherwise common.ErrNotFound.
func (r *WalletRepository) GetOwned(ctx context.Context, ownerID, walletID int64) (*models.Wallet, error) {
	return getOwned(ctx, r.db, ownerID, walletID, false)
}

// Delete removes an owned wallet; its holdings go with it (ON DELETE CASCADE).
func (r *WalletRepository) Delete(ctx context.Context, ownerID, walletID int64) error {
	return db.WithTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		if _, err := getOwned(ctx, tx, ownerID, walletID, true); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM wallets WHERE wallet_id = $1", walletID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func getOwned(ctx context.Context, q db.DBTX, ownerID, walletID int64, lock bool) (*models.Wallet, error) {
	query := `
        SELECT wallet_id, user_id, wallet_name, wallet_type, created_at
        FROM wallets
        WHERE wallet_id = $1 AND user_id = $2`
	if lock {
		query += " FOR UPDATE"
	}

	w := &models.Wallet{}
	err := q.QueryRowContext(ctx, query, walletID, ownerID).
		Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return w, nil
}
