package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryConfig(name string) *Config {
	return &Config{
		Driver: DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name: "postgres",
			config: Config{
				Driver: DriverPostgres, Host: "db", Port: 5432,
				User: "u", Password: "p", Database: "tasks", SSLMode: "disable",
			},
			want: "host=db port=5432 user=u password=p dbname=tasks sslmode=disable",
		},
		{
			name:   "sqlite plain path",
			config: Config{Driver: DriverSQLite, Path: "tasks.db"},
			want:   "tasks.db?_pragma=foreign_keys(1)",
		},
		{
			name:   "sqlite path with query",
			config: Config{Driver: DriverSQLite, Path: "file:x?mode=memory"},
			want:   "file:x?mode=memory&_pragma=foreign_keys(1)",
		},
		{
			name:   "sqlite pragma already set",
			config: Config{Driver: DriverSQLite, Path: "x.db?_pragma=foreign_keys(0)"},
			want:   "x.db?_pragma=foreign_keys(0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

func TestNewClient_SQLite(t *testing.T) {
	client, err := NewClient(memoryConfig("client_test"), discardLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, DriverSQLite, client.Driver())
	assert.NotNil(t, client.GetDB())
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestRunMigrations_SQLite(t *testing.T) {
	client, err := NewClient(memoryConfig("migrate_test"), discardLogger())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.RunMigrations())
	// second run is a no-op
	require.NoError(t, client.RunMigrations())

	var tables []string
	err = client.GetDB().Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'assets') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"assets", "users"}, tables)
}

func TestRunMigrations_ForeignKeysEnforced(t *testing.T) {
	client, err := NewClient(memoryConfig("fk_test"), discardLogger())
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.RunMigrations())

	_, err = client.GetDB().Exec(`INSERT INTO assets (name, value, user_id) VALUES ('Laptop', 1000, 999)`)
	assert.Error(t, err)
}
