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

// UserRepository is the credential store.
type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{db: conn}
}

// FindByEmail looks a user up case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT user_id, email, password_hash, name, created_at, last_login
		 FROM users
		 WHERE LOWER(email) = LOWER($1)`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT user_id, email, password_hash, name, created_at, last_login
		 FROM users
		 WHERE user_id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
	)

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}

// Insert creates a user. A duplicate email yields common.ErrConflict.
func (r *UserRepository) Insert(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, name, created_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING user_id, email, name, created_at`

	u := &models.User{PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, query, email, passwordHash, name).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_login = NOW() WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
