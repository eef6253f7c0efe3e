package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atharvakonge/crypto-portfolio-api/internal/auth"
	"github.com/atharvakonge/crypto-portfolio-api/internal/logger"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "test-secret"
	testInternalKey = "feed-key"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth struct {
	registerFn func(req models.RegisterRequest) (*models.AuthResponse, error)
	loginFn    func(req models.LoginRequest) (*models.AuthResponse, error)
	meFn       func(userID int64) (*models.User, error)
}

func (s *stubAuth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return s.registerFn(req)
}

func (s *stubAuth) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return s.loginFn(req)
}

func (s *stubAuth) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.meFn(userID)
}

type stubWallets struct {
	listFn   func(userID int64) ([]models.Wallet, error)
	createFn func(userID int64, req models.CreateWalletRequest) (*models.Wallet, error)
	deleteFn func(userID, walletID int64) error
}

func (s *stubWallets) List(ctx context.Context, userID int64) ([]models.Wallet, error) {
	return s.listFn(userID)
}

func (s *stubWallets) Create(ctx context.Context, userID int64, req models.CreateWalletRequest) (*models.Wallet, error) {
	return s.createFn(userID, req)
}

func (s *stubWallets) Delete(ctx context.Context, userID, walletID int64) error {
	return s.deleteFn(userID, walletID)
}

type stubHoldings struct {
	listFn   func(userID, walletID int64) ([]models.ValuedHolding, error)
	upsertFn func(userID, walletID int64, req models.UpsertHoldingRequest) (*models.Holding, error)
	deleteFn func(userID, walletID, holdingID int64) error
}

func (s *stubHoldings) List(ctx context.Context, userID, walletID int64) ([]models.ValuedHolding, error) {
	return s.listFn(userID, walletID)
}

func (s *stubHoldings) Upsert(ctx context.Context, userID, walletID int64, req models.UpsertHoldingRequest) (*models.Holding, error) {
	return s.upsertFn(userID, walletID, req)
}

func (s *stubHoldings) Delete(ctx context.Context, userID, walletID, holdingID int64) error {
	return s.deleteFn(userID, walletID, holdingID)
}

type stubPortfolio struct {
	resp *models.PortfolioResponse
	err  error
}

func (s *stubPortfolio) Portfolio(ctx context.Context, userID int64) (*models.PortfolioResponse, error) {
	return s.resp, s.err
}

type stubPrices struct {
	quotes  []models.PriceQuote
	symbols []models.HeldSymbol
	err     error
}

func (s *stubPrices) List(ctx context.Context) ([]models.PriceQuote, error) {
	return s.quotes, s.err
}

func (s *stubPrices) ListByFreshness(ctx context.Context) ([]models.PriceQuote, error) {
	return s.quotes, s.err
}

func (s *stubPrices) HeldSymbols(ctx context.Context) ([]models.HeldSymbol, error) {
	return s.symbols, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

var errBoom = errors.New("connection reset by peer")

type testEnv struct {
	router    *gin.Engine
	tokens    *auth.TokenIssuer
	auth      *stubAuth
	wallets   *stubWallets
	holdings  *stubHoldings
	portfolio *stubPortfolio
	prices    *stubPrices
	pinger    *stubPinger
}

func newTestEnv(t *testing.T, opts ...func(*Dependencies)) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:    auth.NewTokenIssuer(testSecret, time.Hour),
		auth:      &stubAuth{},
		wallets:   &stubWallets{},
		holdings:  &stubHoldings{},
		portfolio: &stubPortfolio{},
		prices:    &stubPrices{},
		pinger:    &stubPinger{},
	}
	deps := Dependencies{
		Auth:           env.auth,
		Wallets:        env.wallets,
		Holdings:       env.holdings,
		Portfolio:      env.portfolio,
		Prices:         env.prices,
		Tokens:         env.tokens,
		DB:             env.pinger,
		InternalAPIKey: testInternalKey,
		Logger:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	env.router = NewRouter(deps)
	return env
}

func (e *testEnv) token(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID, "user@example.com")
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doAuthed(t *testing.T, userID int64, method, path, body string) *httptest.ResponseRecorder {
	return e.do(method, path, body, map[string]string{"Authorization": "Bearer " + e.token(t, userID)})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, w)["error"].(string)
	return msg
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

