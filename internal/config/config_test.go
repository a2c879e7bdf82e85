package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/smarthire")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SCORE_CACHE_TTL", "")
	t.Setenv("WORKER_INTERVAL", "")
	t.Setenv("WORKER_BATCH_SIZE", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.ScoreCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.WorkerInterval)
	assert.Equal(t, 100, cfg.WorkerBatchSize)
	assert.Equal(t, 8, cfg.WorkerConcurrency)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/smarthire")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SCORE_CACHE_TTL", "30m")
	t.Setenv("WORKER_BATCH_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.ScoreCacheTTL)
	assert.Equal(t, 25, cfg.WorkerBatchSize)
}

func TestLoad_InvalidValuesFallBackOrFail(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/smarthire")
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}
