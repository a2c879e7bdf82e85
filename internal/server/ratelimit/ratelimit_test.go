package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    5,
		DefaultWindow:   time.Minute,
		CleanupInterval: 0,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/score", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("1.2.3.4", "/score", "POST")
		assert.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 2, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/score", "POST")
	assert.False(t, allowed)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/score", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/score", "POST")
	assert.True(t, allowed, "a different client keeps its own bucket")
}

func TestLimiter_EndpointsIsolated(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/score", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/score", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("1.1.1.1", "/jobs", "GET")
	assert.True(t, allowed, "exhausting one endpoint must not affect another")
}

func TestLimiter_DefaultLimitApplies(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/jobs", "GET")
		require.True(t, allowed, "request %d", i)
	}
	allowed, _ := l.Allow("1.1.1.1", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := newTestConfig()
	cfg.Whitelist["9.9.9.9"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("9.9.9.9", "/score", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := newTestConfig()
	cfg.Blacklist["6.6.6.6"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("6.6.6.6", "/jobs", "GET")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(newTestConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/jobs", "GET")
	assert.True(t, allowed)
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := newTokenBucket(1, 1000) // 1000 tokens/sec refills almost instantly

	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(5 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill over time")
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/score", Method: "POST", Limit: 2},
		{Path: "/candidates/", Method: "PUT", Limit: 3},
	}

	ec := matchEndpoint("/score", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 2, ec.Limit)

	assert.Nil(t, matchEndpoint("/score", "GET", configs))

	ec = matchEndpoint("/candidates/me", "PUT", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 3, ec.Limit)

	ec = matchEndpoint("/health", "GET", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 0, ec.Limit, "health checks are unlimited")

	assert.Nil(t, matchEndpoint("/unknown", "GET", configs))
}

func TestParseIPList(t *testing.T) {
	result := parseIPList("1.1.1.1, 2.2.2.2,,3.3.3.3 ")
	assert.Len(t, result, 3)
	assert.True(t, result["2.2.2.2"])

	assert.Empty(t, parseIPList(""))
}
