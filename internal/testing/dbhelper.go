// Package testing holds helpers shared by the integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/db"
	"github.com/bagasprakasa/recruitment-test-data-engineering/internal/testinfra"
	"github.com/bagasprakasa/recruitment-test-data-engineering/pkg/codetest"
)

// TestConnEnvVar names an existing server to use instead of a container.
const TestConnEnvVar = "CODETEST_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error

	startContainer = testinfra.StartPostgres
)

// getOrStartTestContainer starts one server per test binary. The Docker
// provider panics when no daemon is reachable; that is reported as an error
// so callers skip instead of failing the package.
func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				testContainerErr = fmt.Errorf("start test container: %v", r)
			}
		}()
		container, err := startContainer(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test server connection string.
// Priority: CODETEST_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(TestConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnvVar, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// CreateTestDB creates an empty database with a unique name and drops it
// when the test completes. It returns the connection config for it.
func CreateTestDB(t *testing.T, serverConnString string) *codetest.ConnectionConfig {
	t.Helper()

	ctx := context.Background()
	dbName := "codetest_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())); err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	t.Cleanup(func() { CleanupTestDB(t, serverConnString, dbName) })

	cfg, err := db.ParseConnectionString(serverConnString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	cfg.Database = dbName
	return cfg
}

// CleanupTestDB drops the test database.
// Safe to call multiple times (uses DROP DATABASE IF EXISTS).
func CleanupTestDB(t *testing.T, serverConnString, dbName string) {
	t.Helper()

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if _, err := conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", pgx.Identifier{dbName}.Sanitize())); err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	}
}

// Connect opens a session to cfg, closed when the test completes.
func Connect(t *testing.T, cfg *codetest.ConnectionConfig) *pgx.Conn {
	t.Helper()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, db.BuildConnectionString(cfg))
	if err != nil {
		t.Fatalf("Failed to connect to %s: %v", cfg.Database, err)
	}
	t.Cleanup(func() { conn.Close(ctx) })
	return conn
}

// CountRows returns the row count of table.
func CountRows(t *testing.T, conn *pgx.Conn, table string) int {
	t.Helper()

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := conn.QueryRow(context.Background(), query).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
