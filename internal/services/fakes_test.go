package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/shopspring/decimal"
)

// fakeUsers is an in-memory credential store.
type fakeUsers struct {
	mu       sync.Mutex
	byID     map[int64]*models.User
	nextID   int64
	touched  []int64
	findErr  error
	insertFn func(email string) error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*models.User{}}
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Insert(ctx context.Context, email, passwordHash, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertFn != nil {
		if err := f.insertFn(email); err != nil {
			return nil, err
		}
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, Name: name, CreatedAt: time.Now()}
	f.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) TouchLastLogin(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.byID[id].LastLogin = &now
	f.touched = append(f.touched, id)
	return nil
}

// fakeWallets is an in-memory wallet store.
type fakeWallets struct {
	wallets map[int64]*models.Wallet
	nextID  int64
	err     error
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{wallets: map[int64]*models.Wallet{}}
}

func (f *fakeWallets) add(ownerID int64, name string) *models.Wallet {
	w, _ := f.Create(context.Background(), ownerID, name, "exchange")
	return w
}

func (f *fakeWallets) List(ctx context.Context, ownerID int64) ([]models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Wallet{}
	for _, w := range f.wallets {
		if w.UserID == ownerID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeWallets) Create(ctx context.Context, ownerID int64, name, walletType string) (*models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, w := range f.wallets {
		if w.UserID == ownerID && w.Name == name {
			return nil, common.ErrConflict
		}
	}
	f.nextID++
	w := &models.Wallet{ID: f.nextID, UserID: ownerID, Name: name, Type: walletType, CreatedAt: time.Now()}
	f.wallets[w.ID] = w
	return w, nil
}

func (f *fakeWallets) GetOwned(ctx context.Context, ownerID, walletID int64) (*models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.wallets[walletID]
	if !ok || w.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	return w, nil
}

func (f *fakeWallets) Delete(ctx context.Context, ownerID, walletID int64) error {
	if _, err := f.GetOwned(ctx, ownerID, walletID); err != nil {
		return err
	}
	delete(f.wallets, walletID)
	return nil
}

type holdingKey struct {
	wallet  int64
	symbol  string
	network string
}

// fakeHoldings is an in-memory holding store keyed like the unique constraint.
type fakeHoldings struct {
	rows    map[holdingKey]*models.Holding
	prices  map[string]models.PriceQuote
	nextID  int64
	upserts int
}

func newFakeHoldings() *fakeHoldings {
	return &fakeHoldings{rows: map[holdingKey]*models.Holding{}, prices: map[string]models.PriceQuote{}}
}

func (f *fakeHoldings) ListForWallet(ctx context.Context, walletID int64) ([]models.ValuedHolding, error) {
	out := []models.ValuedHolding{}
	for k, h := range f.rows {
		if k.wallet != walletID {
			continue
		}
		q := f.prices[h.CoinSymbol]
		out = append(out, models.ValuedHolding{Holding: *h, PriceUSD: q.PriceUSD, PriceEUR: q.PriceEUR})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoinSymbol < out[j].CoinSymbol })
	return out, nil
}

func (f *fakeHoldings) Upsert(ctx context.Context, walletID int64, symbol string, amount decimal.Decimal, network string) (*models.Holding, error) {
	f.upserts++
	k := holdingKey{walletID, symbol, network}
	if h, ok := f.rows[k]; ok {
		h.Amount = amount
		h.LastUpdated = time.Now()
		cp := *h
		return &cp, nil
	}
	f.nextID++
	h := &models.Holding{ID: f.nextID, WalletID: walletID, CoinSymbol: symbol, Amount: amount, Network: network, LastUpdated: time.Now()}
	f.rows[k] = h
	cp := *h
	return &cp, nil
}

func (f *fakeHoldings) Delete(ctx context.Context, walletID, holdingID int64) error {
	for k, h := range f.rows {
		if k.wallet == walletID && h.ID == holdingID {
			delete(f.rows, k)
			return nil
		}
	}
	return common.ErrNotFound
}
