package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/config"
	"github.com/wawe-app/wawe/backend/internal/database"
)

// TestDB wraps a disposable Postgres instance for integration tests.
type TestDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// SetupTestDB starts a Postgres container and connects through the
// normal database package. Tests that call it are skipped unless
// TEST_POSTGRES is set, so the default suite runs without Docker.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("set TEST_POSTGRES=1 to run Postgres container tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "test",
		DBPassword: "test",
		DBName:     "test",
		DBSSLMode:  "disable",
		JWTSecret:  "test-secret",
		ServerPort: "0",
	}

	db, err := database.New(cfg)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{DB: db, Config: cfg, Container: container}
}
