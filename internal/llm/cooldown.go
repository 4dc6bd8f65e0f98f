// internal/llm/cooldown.go
package llm

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"planflow/internal/common/logger"
)

// CooldownStore remembers which tiers were recently rate limited so the
// pipeline can skip them without burning a round trip. This is operational
// state only; no conversation or plan data is stored.
type CooldownStore interface {
	InCooldown(ctx context.Context, tier string) bool
	SetCooldown(ctx context.Context, tier string, ttl time.Duration)
}

const cooldownKeyPrefix = "planflow:tier-cooldown:"

// RedisCooldown backs CooldownStore with redis, sharing throttle state
// across replicas.
type RedisCooldown struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisCooldown(client *redis.Client, log logger.Logger) *RedisCooldown {
	return &RedisCooldown{
		client: client,
		logger: log.With(map[string]interface{}{
			"component": "tier-cooldown",
		}),
	}
}

func (r *RedisCooldown) InCooldown(ctx context.Context, tier string) bool {
	n, err := r.client.Exists(ctx, cooldownKeyPrefix+tier).Result()
	if err != nil {
		// A broken cooldown store must never block generation.
		r.logger.WithError(err).Warn("cooldown lookup failed", map[string]interface{}{
			"tier": tier,
		})
		return false
	}
	return n > 0
}

func (r *RedisCooldown) SetCooldown(ctx context.Context, tier string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, cooldownKeyPrefix+tier, "1", ttl).Err(); err != nil {
		r.logger.WithError(err).Warn("cooldown set failed", map[string]interface{}{
			"tier": tier,
		})
	}
}

// NoopCooldown is used when redis is not configured.
type NoopCooldown struct{}

func (NoopCooldown) InCooldown(context.Context, string) bool            { return false }
func (NoopCooldown) SetCooldown(context.Context, string, time.Duration) {}
