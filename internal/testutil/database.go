//go:build integration

package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dimitrije/carshare/internal/database"
)

const (
	pgUser     = "carshare"
	pgPassword = "carshare"
	pgDatabase = "carshare_test"
)

// TestDB is a migrated Postgres running in a throwaway container.
type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

// SetupTestDB starts Postgres, runs the migrations and registers cleanup on t.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, dsn := startPostgres(ctx, t)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	db := &database.DB{Pool: pool}

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{DB: db, Container: container}
}

func startPostgres(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// Postgres logs readiness twice: once for the init run, once for real.
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to resolve postgres endpoint: %v", err)
	}

	return container, fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase)
}

// Storage returns a LocalStorage bound to namespace.
func (tdb *TestDB) Storage(namespace string) *database.LocalStorage {
	return database.NewLocalStorage(tdb.DB, namespace)
}

// CleanTables empties local_storage between subtests.
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()
	if _, err := tdb.DB.Pool.Exec(context.Background(), "TRUNCATE TABLE local_storage"); err != nil {
		t.Fatalf("failed to truncate local_storage: %v", err)
	}
}
