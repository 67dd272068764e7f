package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/postcode-locator/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService is the fast shared cache tier.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   int64
	misses int64
}

// NewRedisCacheService connects to Redis at redisURL and verifies the
// connection with a ping before returning.
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "postcode:",
		ttl:    24 * time.Hour,
	}, nil
}

func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		atomic.AddInt64(&rcs.misses, 1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.LocationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		rcs.logger.Error("unmarshal cached result failed", zap.Error(err))
		return nil, false, err
	}

	atomic.AddInt64(&rcs.hits, 1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &result, true, nil
}

func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.LocationResult) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result for cache: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Redis delete failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete cache keys: %w", err)
		}
	}

	rcs.logger.Info("cleared Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rcs.client.Exists(ctx, rcs.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&rcs.hits)
	misses := atomic.LoadInt64(&rcs.misses)

	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	totalItems := int64(0)
	if keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result(); err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

// SetTTL overrides the default entry lifetime.
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}
