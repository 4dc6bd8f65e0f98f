// internal/llm/cooldown_test.go
package llm

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planflow/internal/common/logger"
)

func newTestCooldown(t *testing.T) (*RedisCooldown, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCooldown(client, logger.NewTestLogger(t)), mr
}

func TestRedisCooldown_SetAndExpire(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestCooldown(t)

	assert.False(t, store.InCooldown(ctx, "groq-70b"))

	store.SetCooldown(ctx, "groq-70b", 30*time.Second)
	assert.True(t, store.InCooldown(ctx, "groq-70b"))
	assert.False(t, store.InCooldown(ctx, "groq-8b"), "cooldowns are per tier")

	mr.FastForward(31 * time.Second)
	assert.False(t, store.InCooldown(ctx, "groq-70b"))
}

func TestRedisCooldown_ZeroTTLIgnored(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCooldown(t)

	store.SetCooldown(ctx, "groq-70b", 0)
	assert.False(t, store.InCooldown(ctx, "groq-70b"))
}

func TestRedisCooldown_BrokenStoreNeverBlocks(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestCooldown(t)

	store.SetCooldown(ctx, "groq-70b", 30*time.Second)
	mr.Close()

	// Lookup failures read as "not in cooldown" so the tier still gets tried.
	assert.False(t, store.InCooldown(ctx, "groq-70b"))
	store.SetCooldown(ctx, "groq-8b", 30*time.Second) // must not panic
}

func TestNoopCooldown(t *testing.T) {
	ctx := context.Background()
	var store NoopCooldown

	store.SetCooldown(ctx, "groq-70b", time.Minute)
	assert.False(t, store.InCooldown(ctx, "groq-70b"))
}
