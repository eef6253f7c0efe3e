package models

import "time"

// Wallet is a named container of holdings owned by one user
type Wallet struct {
	ID        int64     `json:"wallet_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"wallet_name"`
	Type      string    `json:"wallet_type"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateWalletRequest - what client sends to create a wallet
type CreateWalletRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}
