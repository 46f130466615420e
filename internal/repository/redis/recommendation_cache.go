package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stockpulse/domain"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache keeps recommendation results hot for a short TTL so
// repeated page loads do not rebuild the profile every time.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTTL = 5 * time.Minute

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    defaultTTL,
	}
}

func cacheKey(userID uint) string {
	return fmt.Sprintf("recommendations:user:%d", userID)
}

// Get returns nil without error on a cache miss.
func (c *RecommendationCache) Get(ctx context.Context, userID uint) (*domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendation cache: %w", err)
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return &result, nil
}

func (c *RecommendationCache) Set(ctx context.Context, userID uint, result domain.RecommendationResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write recommendation cache: %w", err)
	}

	return nil
}
