//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestBikecastWithMySQL tests prediction history with a MySQL backend.
func TestBikecastWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "bikecast",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/bikecast", host, port.Port())
	exerciseHistoryBackend(t, []string{
		"BIKECAST_HISTORY_BACKEND=mysql",
		"BIKECAST_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestBikecastWithPostgres tests prediction history with a PostgreSQL backend.
func TestBikecastWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseHistoryBackend(t, []string{
		"BIKECAST_HISTORY_BACKEND=postgresql",
		"BIKECAST_HISTORY_DB_CONNECT=" + connStr,
	})
}

// exerciseHistoryBackend runs the full history lifecycle against one backend.
func exerciseHistoryBackend(t *testing.T, env []string) {
	t.Helper()

	// Start from a clean schema
	_, err := runBikecast(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runBikecast(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runBikecast(t, env, append([]string{"predict"}, fixtureArgs...)...)
	require.NoError(t, err)
	_, err = runBikecast(t, env, "predict", "--year", "1", "--temperature", "hot", "--humidity", "55",
		"--windspeed", "8", "--season", "Summer", "--month", "Jul", "--weather", "Clear", "--weekday", "Mon")
	// A non-numeric flag value is rejected by flag parsing, not recorded
	assert.Error(t, err)

	out, err := runBikecast(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "Total Predictions: 1")

	exportPath := filepath.Join(t.TempDir(), "predictions.parquet")
	_, err = runBikecast(t, env, "history", "export", "--output-file", exportPath)
	require.NoError(t, err)
	assert.FileExists(t, exportPath)

	_, err = runBikecast(t, env, "history", "migrate", "--to", "1")
	require.NoError(t, err)

	_, err = runBikecast(t, env, "history", "clear")
	require.NoError(t, err)
}
