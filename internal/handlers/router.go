package handlers

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/atharvakonge/crypto-portfolio-api/internal/auth"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

type WalletService interface {
	List(ctx context.Context, userID int64) ([]models.Wallet, error)
	Create(ctx context.Context, userID int64, req models.CreateWalletRequest) (*models.Wallet, error)
	Delete(ctx context.Context, userID, walletID int64) error
}

type HoldingService interface {
	List(ctx context.Context, userID, walletID int64) ([]models.ValuedHolding, error)
	Upsert(ctx context.Context, userID, walletID int64, req models.UpsertHoldingRequest) (*models.Holding, error)
	Delete(ctx context.Context, userID, walletID, holdingID int64) error
}

type PortfolioService interface {
	Portfolio(ctx context.Context, userID int64) (*models.PortfolioResponse, error)
}

// PriceReader is the read side of the price feed.
type PriceReader interface {
	List(ctx context.Context) ([]models.PriceQuote, error)
	ListByFreshness(ctx context.Context) ([]models.PriceQuote, error)
	HeldSymbols(ctx context.Context) ([]models.HeldSymbol, error)
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies is everything the HTTP layer needs, injected at startup.
type Dependencies struct {
	Auth           AuthService
	Wallets        WalletService
	Holdings       HoldingService
	Portfolio      PortfolioService
	Prices         PriceReader
	Tokens         TokenVerifier
	DB             Pinger
	Stream         *PriceStream
	InternalAPIKey string
	CORSOrigins    []string
	PublicDir      string
	Logger         *logrus.Logger
}

type Handler struct {
	auth        AuthService
	wallets     WalletService
	holdings    HoldingService
	portfolio   PortfolioService
	prices      PriceReader
	tokens      TokenVerifier
	db          Pinger
	stream      *PriceStream
	internalKey string
	log         *logrus.Logger
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(d Dependencies) *gin.Engine {
	useJSONFieldNames()

	h := &Handler{
		auth:        d.Auth,
		wallets:     d.Wallets,
		holdings:    d.Holdings,
		portfolio:   d.Portfolio,
		prices:      d.Prices,
		tokens:      d.Tokens,
		db:          d.DB,
		stream:      d.Stream,
		internalKey: d.InternalAPIKey,
		log:         d.Logger,
	}

	router := gin.New()
	router.Use(RequestLogger(h.log), Recovery(h.log), CORS(d.CORSOrigins))

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", h.RequireUser, h.Me)

		user := api.Group("", h.RequireUser)
		user.GET("/wallets", h.ListWallets)
		user.POST("/wallets", h.CreateWallet)
		user.DELETE("/wallets/:id", h.DeleteWallet)

		user.GET("/wallets/:id/holdings", h.ListHoldings)
		user.POST("/wallets/:id/holdings", h.UpsertHolding)
		user.DELETE("/wallets/:id/holdings/:holdingId", h.DeleteHolding)

		user.GET("/portfolio", h.GetPortfolio)
		user.GET("/prices", h.ListPrices)

		internal := api.Group("/internal", h.RequireInternalKey)
		internal.GET("/all-holdings", h.InternalHeldSymbols)
		internal.GET("/prices", h.InternalPrices)
	}

	if h.stream != nil {
		router.GET("/ws/prices", h.RequireUser, h.stream.Handle)
	}

	if d.PublicDir != "" {
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(d.PublicDir, "index.html"))
		})
	}

	router.NoRoute(func(c *gin.Context) {
		if d.PublicDir != "" && serveStatic(c, d.PublicDir) {
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}

// serveStatic serves a file of the frontend for GET/HEAD requests outside
// /api. It reports whether a file was written.
func serveStatic(c *gin.Context, dir string) bool {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return false
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}

	// Cleaning a rooted path drops any "..".
	name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return false
	}

	c.File(name)
	return true
}
