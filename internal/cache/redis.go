package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 15 * time.Minute

type RedisCache struct {
	client  redis.Cmdable
	baseTTL time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{
		client:  client,
		baseTTL: ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

// Set stores the lines with the base TTL plus up to five minutes of jitter
// so entries written together do not expire together.
func (r *RedisCache) Set(ctx context.Context, userID string, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}
