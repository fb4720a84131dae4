package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/exams")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "local", cfg.AppEnv)
	require.Equal(t, LedgerBackendPostgres, cfg.LedgerBackend)
	require.Equal(t, "mock", cfg.LLMAPIKey)
	require.Equal(t, 4000, cfg.ChunkSize)
	require.Equal(t, 400, cfg.ChunkOverlap)
	require.Equal(t, 8080, cfg.HealthPort)
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, LedgerBackendRedis, cfg.LedgerBackend)
	require.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "dynamo")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "LEDGER_BACKEND")
}
