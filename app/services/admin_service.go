package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
	"go.uber.org/zap"
)

// AdminService backs the operational endpoints.
type AdminService struct {
	locator *LocatorService
	catalog *catalog.Catalog
	cache   ICacheService
	logger  *zap.Logger
}

// SystemStats is the admin stats payload.
type SystemStats struct {
	Uptime       string                 `json:"uptime"`
	Usage        models.UsageStats      `json:"usage"`
	CatalogSize  int                    `json:"catalog_size"`
	StateSummary map[string]int         `json:"state_summary"`
	Cache        *CacheStats            `json:"cache,omitempty"`
	MemoryUsage  map[string]interface{} `json:"memory_usage"`
}

// NewAdminService creates an AdminService.
func NewAdminService(locator *LocatorService, cat *catalog.Catalog, cache ICacheService, logger *zap.Logger) *AdminService {
	return &AdminService{
		locator: locator,
		catalog: cat,
		cache:   cache,
		logger:  logger,
	}
}

// GetSystemStats gathers uptime, lookup counters, catalog shape, cache
// activity and memory usage into one snapshot.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime:       time.Since(as.locator.GetStartTime()).Round(time.Second).String(),
		Usage:        as.locator.Stats(),
		CatalogSize:  as.catalog.Len(),
		StateSummary: as.catalog.StateSummary(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb": m.Alloc / 1024 / 1024,
			"sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}

	if as.cache != nil {
		cacheStats, err := as.cache.GetStats(ctx)
		if err != nil {
			as.logger.Warn("cache stats unavailable", zap.Error(err))
		} else {
			stats.Cache = cacheStats
		}
	}

	return stats, nil
}

// InvalidateCache drops every cached lookup.
func (as *AdminService) InvalidateCache(ctx context.Context) error {
	if as.cache == nil {
		return nil
	}
	if err := as.cache.Clear(ctx); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	as.logger.Info("lookup cache invalidated")
	return nil
}
