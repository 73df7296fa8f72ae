package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"myMovieLab/domain"
)

// RecommendationCache keeps recommend responses in Redis for a short TTL.
// Keys carry the engine bundle version, so a reload naturally stops
// hitting entries computed by the previous model.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(version int64, userID, n int) string {
	return fmt.Sprintf("reco:v%d:user:%d:n:%d", version, userID, n)
}

// Get returns the cached recommendations, or (nil, nil) on a miss.
func (c *RecommendationCache) Get(ctx context.Context, version int64, userID, n int) ([]domain.MovieRecommendation, error) {
	val, err := c.client.Get(ctx, cacheKey(version, userID, n)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recommendations from Redis: %w", err)
	}

	var recs []domain.MovieRecommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, nil
}

func (c *RecommendationCache) Set(ctx context.Context, version int64, userID, n int, recs []domain.MovieRecommendation) error {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(version, userID, n), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}
