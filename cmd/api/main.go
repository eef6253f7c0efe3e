package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/atharvakonge/crypto-portfolio-api/internal/auth"
	"github.com/atharvakonge/crypto-portfolio-api/internal/config"
	"github.com/atharvakonge/crypto-portfolio-api/internal/db"
	"github.com/atharvakonge/crypto-portfolio-api/internal/handlers"
	"github.com/atharvakonge/crypto-portfolio-api/internal/logger"
	"github.com/atharvakonge/crypto-portfolio-api/internal/portfolio"
	"github.com/atharvakonge/crypto-portfolio-api/internal/repository"
	"github.com/atharvakonge/crypto-portfolio-api/internal/server"
	"github.com/atharvakonge/crypto-portfolio-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, ok := loadConfig(logger.New("info", "text", os.Stdout))
	if !ok {
		os.Exit(1)
	}

	logr := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.WithError(err).Fatal("server exited with error")
	}
}

// loadConfig reports a bad configuration through bootLog, which uses the
// default level and format since the configured ones are not known yet.
func loadConfig(bootLog *logrus.Logger) (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		bootLog.WithError(err).Error("invalid configuration")
		return nil, false
	}
	return cfg, true
}

func run(ctx context.Context, cfg *config.Config, logr *logrus.Logger) error {
	logr.WithFields(logrus.Fields{
		"db_driver":        cfg.DB.Driver,
		"db_host":          cfg.DB.Host,
		"db_name":          cfg.DB.Name,
		"internal_key_set": cfg.Internal.APIKey != "",
		"cors_origins":     cfg.App.CORSOrigins,
		"public_dir":       cfg.App.PublicDir,
	}).Info("configuration loaded")

	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	// Runs last: the pool outlives every in-flight request.
	defer func() {
		conn.Close()
		logr.Info("database connection closed")
	}()
	logr.Info("database connected")

	if cfg.DB.Migrate {
		if err := db.Migrate(ctx, conn); err != nil {
			return err
		}
		logr.Info("migrations applied")
	}

	if cfg.App.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	users := repository.NewUserRepository(conn)
	wallets := repository.NewWalletRepository(conn)
	holdings := repository.NewHoldingRepository(conn)
	prices := repository.NewPriceRepository(conn)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	stream := handlers.NewPriceStream(prices, cfg.App.PriceStreamInterval, logr)

	router := handlers.NewRouter(handlers.Dependencies{
		Auth:           services.NewAuthService(users, tokens, auth.NewPasswordHasher(cfg.Auth.BcryptCost)),
		Wallets:        services.NewWalletService(wallets),
		Holdings:       services.NewHoldingService(wallets, holdings),
		Portfolio:      portfolio.NewAggregator(repository.NewPortfolioRepository(conn)),
		Prices:         prices,
		Tokens:         tokens,
		DB:             conn,
		Stream:         stream,
		InternalAPIKey: cfg.Internal.APIKey,
		CORSOrigins:    cfg.App.CORSOrigins,
		PublicDir:      cfg.App.PublicDir,
		Logger:         logr,
	})

	for _, r := range router.Routes() {
		logr.Debugf("route %-6s %s", r.Method, r.Path)
	}

	srv := server.New(":"+cfg.App.Port, router, cfg.App.ShutdownTimeout, logr)
	srv.OnShutdown(stream.Close)

	return srv.Run(ctx)
}
