package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
)

// MaxPasswordLength is the most bcrypt will hash; longer input is refused
// rather than truncated.
const MaxPasswordLength = 72

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Insert(ctx context.Context, email, passwordHash, name string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type TokenSigner interface {
	Issue(userID int64, email string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenSigner
	hasher PasswordHasher
}

func NewAuthService(users UserStore, tokens TokenSigner, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher}
}

// errBadCredentials is shared by every login failure so that an unknown
// email and a wrong password look the same to the caller.
var errBadCredentials = common.New(common.ErrUnauthorized, "incorrect email or password")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, common.Validation("email is required")
	}
	if len(req.Password) > MaxPasswordLength {
		return nil, common.Validation(fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength))
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.Conflict("email already in use")
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Insert(ctx, email, hash, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Conflict("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Message: "user created",
		Token:   token,
		User:    user.Public(),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errBadCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("touch last login: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    user.Public(),
	}, nil
}

// Me returns the profile behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
