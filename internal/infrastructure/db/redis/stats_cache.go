package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/societyhub/community-api/internal/core/ports"
)

const statsTTL = 30 * time.Second

// StatsCache caches per-actor dashboard counts in Redis.
// Key format: dashboard:stats:<actor_id>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats for actorID, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context, actorID string) (*ports.DashboardStats, error) {
	raw, err := c.client.Get(ctx, c.key(actorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the stats for actorID (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, actorID string, stats ports.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(actorID), raw, statsTTL).Err()
}

// Invalidate drops the cached stats for actorID.
func (c *StatsCache) Invalidate(ctx context.Context, actorID string) error {
	return c.client.Del(ctx, c.key(actorID)).Err()
}

func (c *StatsCache) key(actorID string) string {
	return "dashboard:stats:" + actorID
}
