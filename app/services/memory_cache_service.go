package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/postcode-locator/app/models"
	"go.uber.org/zap"
)

// MemoryCacheService is the in-process fallback tier, used when neither Redis
// nor MongoDB is configured. Bounded by an LRU so an unattended instance
// cannot grow without limit.
type MemoryCacheService struct {
	cache  *lru.Cache[string, *models.LocationResult]
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewMemoryCacheService creates an in-memory cache holding at most size
// entries.
func NewMemoryCacheService(size int, logger *zap.Logger) (*MemoryCacheService, error) {
	cache, err := lru.New[string, *models.LocationResult](size)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}
	return &MemoryCacheService{cache: cache, logger: logger}, nil
}

func (mcs *MemoryCacheService) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	if result, found := mcs.cache.Get(key); found {
		atomic.AddInt64(&mcs.hits, 1)
		return result, true, nil
	}
	atomic.AddInt64(&mcs.misses, 1)
	return nil, false, nil
}

func (mcs *MemoryCacheService) Set(ctx context.Context, key string, result *models.LocationResult) error {
	mcs.cache.Add(key, result)
	return nil
}

func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	atomic.StoreInt64(&mcs.hits, 0)
	atomic.StoreInt64(&mcs.misses, 0)
	return nil
}

func (mcs *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return mcs.cache.Contains(key), nil
}

// GetTTL always returns 0: entries live until evicted by the LRU.
func (mcs *MemoryCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&mcs.hits)
	misses := atomic.LoadInt64(&mcs.misses)

	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mcs.cache.Len()),
	}, nil
}

func (mcs *MemoryCacheService) Close() error {
	return nil
}
