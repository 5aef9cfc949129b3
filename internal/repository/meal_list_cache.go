package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"meal-server/internal/models"
)

const mealListKeyPrefix = "latest_meals:"

// Compile-time check to ensure redisMealListCache implements MealListCache
var _ MealListCache = (*redisMealListCache)(nil)

type redisMealListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisMealListCache creates a Redis-backed MealListCache. Every error is
// logged and swallowed: a broken cache degrades to a miss, never to a failed
// request.
func NewRedisMealListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) MealListCache {
	return &redisMealListCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("MealListCache"),
	}
}

func mealListKey(userID string, limit int, next string) string {
	if next == "" {
		next = "first"
	}
	return fmt.Sprintf("%s%s:%d:%s", mealListKeyPrefix, userID, limit, next)
}

func (c *redisMealListCache) Get(ctx context.Context, userID string, limit int, next string) (*models.MealPage, bool) {
	key := mealListKey(userID, limit, next)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("Cache lookup failed, treating as miss", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var page models.MealPage
	if err := json.Unmarshal(data, &page); err != nil {
		c.logger.Warn("Corrupted cache entry, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (c *redisMealListCache) Set(ctx context.Context, userID string, limit int, next string, page *models.MealPage) {
	key := mealListKey(userID, limit, next)
	data, err := json.Marshal(page)
	if err != nil {
		c.logger.Error("Failed to marshal meal page for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate deletes every cached page for the owner by key pattern so a
// freshly promoted meal is visible on the next listing, before TTL expiry.
func (c *redisMealListCache) Invalidate(ctx context.Context, userID string) {
	pattern := mealListKeyPrefix + userID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("Cache invalidation scan failed", zap.String("userID", userID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("Failed to delete cached meal pages", zap.String("userID", userID), zap.Error(err))
		return
	}
	c.logger.Debug("Invalidated cached meal pages",
		zap.String("userID", userID),
		zap.Int("keys", len(keys)))
}
