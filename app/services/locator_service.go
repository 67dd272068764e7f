package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/helpers/utils"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/geocode"
	"github.com/postcode-locator/internal/matcher"
	"go.uber.org/zap"
)

// Sentinel errors for the lookup pipeline. Controllers map these to HTTP
// status codes.
var (
	ErrNoAddress      = errors.New("no address found for location")
	ErrBelowThreshold = errors.New("no postal code matched with sufficient confidence")
)

// Geocoder is the upstream geocoding client the locator drives.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (geocode.Result, bool, error)
	Geocode(ctx context.Context, query string) (geocode.Result, bool, error)
}

// LocatorService resolves coordinates or free-text queries to Nigerian postal
// codes: geocode upstream, extract typed components, then match against the
// reference catalog. Resolved lookups are cached.
type LocatorService struct {
	geocoder        Geocoder
	matcher         *matcher.Matcher
	catalog         *catalog.Catalog
	cache           ICacheService
	logger          *zap.Logger
	acceptThreshold float64
	startTime       time.Time

	totalLookups  int64
	fromGoogle    int64
	fromDatabase  int64
	failedLookups int64
}

// NewLocatorService wires the lookup pipeline. cache may be nil, in which
// case every lookup goes upstream.
func NewLocatorService(geocoder Geocoder, m *matcher.Matcher, cat *catalog.Catalog, cache ICacheService, acceptThreshold float64, logger *zap.Logger) *LocatorService {
	if acceptThreshold <= 0 {
		acceptThreshold = 50
	}
	return &LocatorService{
		geocoder:        geocoder,
		matcher:         m,
		catalog:         cat,
		cache:           cache,
		logger:          logger,
		acceptThreshold: acceptThreshold,
		startTime:       time.Now(),
	}
}

// LookupByCoordinates resolves a lat/lng pair to a postal code. The second
// return value reports whether the answer came from cache.
func (ls *LocatorService) LookupByCoordinates(ctx context.Context, lat, lng float64) (*models.LocationResult, bool, error) {
	atomic.AddInt64(&ls.totalLookups, 1)

	key := utils.CoordinateKey("coord", lat, lng)
	if cached := ls.fromCache(ctx, key); cached != nil {
		return cached, true, nil
	}

	geoResult, found, err := ls.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, err
	}
	if !found {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, ErrNoAddress
	}

	result, err := ls.resolve(geoResult, models.Coordinates{Lat: lat, Lng: lng})
	if err != nil {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, err
	}

	ls.toCache(ctx, key, result)
	return result, false, nil
}

// LookupByQuery resolves a free-text place query to a postal code via forward
// geocoding.
func (ls *LocatorService) LookupByQuery(ctx context.Context, query string) (*models.LocationResult, bool, error) {
	atomic.AddInt64(&ls.totalLookups, 1)

	query = strings.TrimSpace(query)
	if query == "" {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, ErrNoAddress
	}

	key := utils.CacheKey("query", query)
	if cached := ls.fromCache(ctx, key); cached != nil {
		return cached, true, nil
	}

	geoResult, found, err := ls.geocoder.Geocode(ctx, query)
	if err != nil {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, err
	}
	if !found {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, ErrNoAddress
	}

	result, err := ls.resolve(geoResult, geoResult.Coordinates)
	if err != nil {
		atomic.AddInt64(&ls.failedLookups, 1)
		return nil, false, err
	}

	ls.toCache(ctx, key, result)
	return result, false, nil
}

// resolve turns one geocoder answer into a LocationResult. An upstream postal
// code wins outright; otherwise the extracted components drive the matcher.
func (ls *LocatorService) resolve(geoResult geocode.Result, coords models.Coordinates) (*models.LocationResult, error) {
	comps := geocode.ExtractComponents(geoResult.Components)

	if comps.PostalCode != "" {
		atomic.AddInt64(&ls.fromGoogle, 1)
		return &models.LocationResult{
			PostalCode:  comps.PostalCode,
			Source:      models.SourceGoogle,
			Address:     geoResult.FormattedAddress,
			LGA:         comps.LGA,
			Area:        comps.Area,
			State:       comps.State,
			Confidence:  100,
			MatchType:   models.MatchTypeExact,
			Coordinates: coords,
			Timestamp:   time.Now(),
		}, nil
	}

	match := ls.matcher.Match(geoResult.FormattedAddress, comps.LGA, comps.Area)
	if match.Record == nil || match.Confidence < ls.acceptThreshold {
		ls.logger.Debug("lookup below acceptance threshold",
			zap.String("address", geoResult.FormattedAddress),
			zap.Float64("confidence", match.Confidence),
			zap.String("match_type", match.MatchType))
		return nil, ErrBelowThreshold
	}

	atomic.AddInt64(&ls.fromDatabase, 1)
	return &models.LocationResult{
		PostalCode:  match.Record.PostalCode,
		Source:      models.SourceDatabase,
		Address:     geoResult.FormattedAddress,
		LGA:         match.Record.LGA,
		Area:        match.Record.Area,
		State:       match.Record.State,
		Confidence:  match.Confidence,
		MatchType:   match.MatchType,
		Coordinates: coords,
		Timestamp:   time.Now(),
	}, nil
}

func (ls *LocatorService) fromCache(ctx context.Context, key string) *models.LocationResult {
	if ls.cache == nil {
		return nil
	}
	result, found, err := ls.cache.Get(ctx, key)
	if err != nil {
		ls.logger.Warn("cache read failed", zap.Error(err), zap.String("key", key))
		return nil
	}
	if !found {
		return nil
	}
	if result.Source == models.SourceGoogle {
		atomic.AddInt64(&ls.fromGoogle, 1)
	} else {
		atomic.AddInt64(&ls.fromDatabase, 1)
	}
	return result
}

func (ls *LocatorService) toCache(ctx context.Context, key string, result *models.LocationResult) {
	if ls.cache == nil {
		return
	}
	if err := ls.cache.Set(ctx, key, result); err != nil {
		ls.logger.Warn("cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// SearchPostcodes ranks catalog records against a free-text query. It never
// touches the upstream geocoder.
func (ls *LocatorService) SearchPostcodes(query string, limit int) []catalog.SearchResult {
	return ls.catalog.Search(query, limit)
}

// FindByPostalCode returns every catalog record under a postal code.
func (ls *LocatorService) FindByPostalCode(code string) []models.PostalCodeRecord {
	return ls.catalog.FindByPostalCode(code)
}

// Stats snapshots the in-process lookup counters.
func (ls *LocatorService) Stats() models.UsageStats {
	return models.UsageStats{
		TotalLookups:  atomic.LoadInt64(&ls.totalLookups),
		FromGoogle:    atomic.LoadInt64(&ls.fromGoogle),
		FromDatabase:  atomic.LoadInt64(&ls.fromDatabase),
		FailedLookups: atomic.LoadInt64(&ls.failedLookups),
	}
}

// GetStartTime returns when the service came up.
func (ls *LocatorService) GetStartTime() time.Time {
	return ls.startTime
}
