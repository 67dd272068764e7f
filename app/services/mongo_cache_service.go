package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/postcode-locator/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCacheService is the persistent cache tier: a small in-process LRU in
// front of a MongoDB collection. Entries survive restarts; the LRU absorbs
// repeated lookups of the same key within one process.
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.LocationResult]
	logger     *zap.Logger

	totalHits int64
	totalMiss int64
}

// NewMongoCacheService builds the persistent tier on db, with an in-process
// LRU of l1Size entries in front of it.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.LocationResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}

	collection := db.Collection("location_cache")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "key_fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "postal_code", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create location_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.LocationResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		atomic.AddInt64(&mcs.totalHits, 1)
		return result, true, nil
	}

	fingerprint := mcs.fingerprint(key)

	var entry models.LocationCache
	err := mcs.collection.FindOne(ctx, bson.M{"key_fingerprint": fingerprint}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			atomic.AddInt64(&mcs.totalMiss, 1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query MongoDB cache: %w", err)
	}

	atomic.AddInt64(&mcs.totalHits, 1)
	go mcs.updateAccessStats(entry.ID)
	mcs.l1Cache.Add(key, &entry.Result)

	mcs.logger.Debug("MongoDB cache hit", zap.String("fingerprint", fingerprint))
	return &entry.Result, true, nil
}

func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.LocationResult) error {
	mcs.l1Cache.Add(key, result)

	fingerprint := mcs.fingerprint(key)
	entry := models.LocationCache{
		KeyFingerprint: fingerprint,
		RawKey:         key,
		Result:         *result,
		PostalCode:     result.PostalCode,
		Confidence:     result.Confidence,
		MatchType:      result.MatchType,
		CreatedAt:      time.Now(),
		LastAccessed:   time.Now(),
		AccessCount:    1,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"key_fingerprint": fingerprint}, entry, opts); err != nil {
		mcs.logger.Error("MongoDB cache set failed", zap.Error(err), zap.String("fingerprint", fingerprint))
		return fmt.Errorf("store in MongoDB cache: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"key_fingerprint": mcs.fingerprint(key)}); err != nil {
		return fmt.Errorf("delete from MongoDB cache: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear MongoDB cache: %w", err)
	}

	atomic.StoreInt64(&mcs.totalHits, 0)
	atomic.StoreInt64(&mcs.totalMiss, 0)
	return nil
}

func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}

	count, err := mcs.collection.CountDocuments(ctx, bson.M{"key_fingerprint": mcs.fingerprint(key)})
	if err != nil {
		return false, fmt.Errorf("check MongoDB cache: %w", err)
	}
	return count > 0, nil
}

// GetTTL always returns 0: the persistent tier keeps entries until cleared.
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count MongoDB cache documents: %w", err)
	}

	hits := atomic.LoadInt64(&mcs.totalHits)
	misses := atomic.LoadInt64(&mcs.totalMiss)

	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: mongoCount,
	}, nil
}

// Close is a no-op: the mongo client is owned by the caller.
func (mcs *MongoCacheService) Close() error {
	return nil
}

func (mcs *MongoCacheService) fingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}

func (mcs *MongoCacheService) updateAccessStats(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("update cache access stats failed", zap.Error(err))
	}
}

// WarmUp preloads the most-accessed persistent entries into the L1 LRU.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.LocationCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("decode cache entry during warm up failed", zap.Error(err))
			continue
		}
		if mcs.warmEntry(&entry) {
			count++
		}
	}

	mcs.logger.Info("cache warm up done", zap.Int("loaded_items", count))
	return nil
}

// warmEntry loads one persistent entry into the L1 under the raw key it was
// stored with, so subsequent Gets hit it. The fingerprint is one-way; entries
// written before the raw key was persisted cannot be warmed and are skipped.
func (mcs *MongoCacheService) warmEntry(entry *models.LocationCache) bool {
	if entry.RawKey == "" {
		return false
	}
	mcs.l1Cache.Add(entry.RawKey, &entry.Result)
	return true
}
