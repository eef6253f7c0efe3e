package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned by Load when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds everything the process needs at startup.
// It is built once in main and handed to each component.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Auth     AuthConfig
	Log      LogConfig
	Internal InternalConfig
}

type AppConfig struct {
	Port                string
	GinMode             string
	ShutdownTimeout     time.Duration
	PriceStreamInterval time.Duration
	// CORSOrigins lists the browser origins allowed to call the API; "*" allows any.
	CORSOrigins []string
	// PublicDir holds the static frontend. Empty disables static serving.
	PublicDir string
}

type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// DSN builds a key/value connection string understood by both lib/pq and pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type LogConfig struct {
	Level  string
	Format string
}

type InternalConfig struct {
	APIKey string
}

// Load reads the environment (overlaid with an optional .env file).
// A missing JWT_SECRET is fatal.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	l := &loader{}
	cfg := &Config{
		App: AppConfig{
			Port:                getEnv("PORT", "3000"),
			GinMode:             getEnv("GIN_MODE", "debug"),
			ShutdownTimeout:     l.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			PriceStreamInterval: l.duration("PRICE_STREAM_INTERVAL", 5*time.Second),
			CORSOrigins:         getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			PublicDir:           os.Getenv("PUBLIC_DIR"),
		},
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "crypto_portfolio"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    l.int("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    l.int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: l.duration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Migrate:         l.bool("DB_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   l.duration("JWT_TTL", 7*24*time.Hour),
			BcryptCost: l.int("BCRYPT_COST", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Internal: InternalConfig{
			APIKey: os.Getenv("INTERNAL_API_KEY"),
		},
	}

	if l.err != nil {
		return nil, l.err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	switch cfg.DB.Driver {
	case "postgres", "pgx":
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or a default value if not set
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string, defaultVal []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// loader remembers the first malformed variable so Load can report it.
type loader struct {
	err error
}

func (l *loader) fail(key string, err error) {
	if l.err == nil {
		l.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (l *loader) int(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return n
}

func (l *loader) duration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return d
}

func (l *loader) bool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return b
}
