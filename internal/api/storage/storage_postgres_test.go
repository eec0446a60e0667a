package storage_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/api/storage"
	"github.com/cuongbtq/taskqueue-be/shared/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres spins up a Postgres container and returns a migrated storage
func setupPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tasks_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	client, err := database.NewClient(&database.Config{
		Driver:   database.DriverPostgres,
		Host:     host,
		Port:     port.Int(),
		User:     "test",
		Password: "test",
		Database: "tasks_test",
		SSLMode:  "disable",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.RunMigrations())
	return storage.NewStorage(client.GetDB())
}

func TestStorage_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	exerciseStorage(t, setupPostgres(t))
}
