// Package scorecache memoizes ATS scoring results in Redis. The engine
// itself never touches a cache; this package implements the
// scoring.ResultCache interface consumed by the scoring service.
package scorecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

// Cache stores scoring results keyed by (tenant, job, resume, weights).
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a cache around an existing Redis client. A non-positive ttl
// falls back to scoring.CacheTTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = scoring.CacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// Get returns the cached result for the context, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, sc scoring.ScoringContext) (*scoring.ScoringResult, error) {
	payload, err := c.rdb.Get(ctx, Key(sc)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read score cache: %w", err)
	}

	var result scoring.ScoringResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &result, nil
}

// Set stores a result under the context's key with the configured TTL.
func (c *Cache) Set(ctx context.Context, sc scoring.ScoringContext, result *scoring.ScoringResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal score result: %w", err)
	}

	if err := c.rdb.Set(ctx, Key(sc), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write score cache: %w", err)
	}
	return nil
}

// Key derives the cache key for a scoring context. The tenant ID is
// wrapped in a Redis Cluster hashtag so all of a tenant's entries land on
// the same slot. Weight overrides are folded in via a short hash so
// per-request weights never collide with default-weight results.
func Key(sc scoring.ScoringContext) string {
	return fmt.Sprintf("%s:{%s}:job:%s:resume:%s:w:%s",
		scoring.RedisKeyPrefix, sc.TenantID, sc.JobID, sc.ResumeID, weightsDigest(sc.Weights))
}

// weightsDigest returns a stable short digest of the weight overrides.
func weightsDigest(w *scoring.WeightStrategy) string {
	if w == nil {
		return "default"
	}

	// Field order in the struct is fixed, so marshaling is canonical.
	payload, err := json.Marshal(w)
	if err != nil {
		return "default"
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:6])
}
