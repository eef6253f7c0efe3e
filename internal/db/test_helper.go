package db

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// TestDSNEnv names the variable that points integration tests at a real
// Postgres. Tests using SetupTestDB are skipped when it is unset.
const TestDSNEnv = "TEST_DATABASE_DSN"

// SetupTestDB connects to the integration database, applies migrations and
// empties every table when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping integration test", TestDSNEnv)
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = conn.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := Migrate(context.Background(), conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		CleanupTestDB(t, conn)
		conn.Close()
	})

	return conn
}

// CleanupTestDB deletes all test data
func CleanupTestDB(t *testing.T, conn *sql.DB) {
	_, err := conn.Exec("TRUNCATE crypto_prices, holdings, wallets, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Logf("Warning: Failed to cleanup tables: %v", err)
	}
}

// CreateTestUser inserts a user and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, email string) int64 {
	t.Helper()

	var userID int64
	err := conn.QueryRow(
		"INSERT INTO users (email, password_hash, name) VALUES ($1, 'x', 'test') RETURNING user_id",
		email,
	).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// SetTestPrice writes a quote the way the external feed would
func SetTestPrice(t *testing.T, conn *sql.DB, symbol, usd, eur string) {
	t.Helper()

	_, err := conn.Exec(`
        INSERT INTO crypto_prices (coin_symbol, price_usd, price_eur, last_updated)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (coin_symbol) DO UPDATE
        SET price_usd = EXCLUDED.price_usd, price_eur = EXCLUDED.price_eur, last_updated = NOW()
    `, symbol, usd, eur)
	if err != nil {
		t.Fatalf("Failed to set test price: %v", err)
	}
}
