package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postcode-locator/app/requests"
	"github.com/postcode-locator/app/responses"
	"github.com/postcode-locator/app/services"
	"go.uber.org/zap"
)

var postalCodePattern = regexp.MustCompile(`^\d{6}$`)

// LookupController handles the postal-code lookup endpoints.
type LookupController struct {
	locatorService *services.LocatorService
	logger         *zap.Logger
}

// NewLookupController creates a LookupController.
func NewLookupController(locatorService *services.LocatorService, logger *zap.Logger) *LookupController {
	return &LookupController{
		locatorService: locatorService,
		logger:         logger,
	}
}

// Lookup resolves a coordinate pair to a postal code.
func (lc *LookupController) Lookup(c *gin.Context) {
	var req requests.CoordinateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "lat and lng are required: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	startTime := time.Now()
	result, cacheHit, err := lc.locatorService.LookupByCoordinates(c.Request.Context(), *req.Lat, *req.Lng)
	if err != nil {
		lc.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.LookupResponse{
		Result:           result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// LookupQuery resolves a free-text place query to a postal code.
func (lc *LookupController) LookupQuery(c *gin.Context) {
	var req requests.QueryLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "query is required: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	startTime := time.Now()
	result, cacheHit, err := lc.locatorService.LookupByQuery(c.Request.Context(), req.Query)
	if err != nil {
		lc.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.LookupResponse{
		Result:           result,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// SearchPostcodes ranks catalog records against a free-text query. Never
// calls the upstream geocoder.
func (lc *LookupController) SearchPostcodes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_QUERY",
			Message:   "query parameter q is required",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	results := lc.locatorService.SearchPostcodes(query, limit)
	c.JSON(http.StatusOK, responses.SearchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}

// GetPostcode lists every catalog record under one postal code.
func (lc *LookupController) GetPostcode(c *gin.Context) {
	code := c.Param("code")
	if !postalCodePattern.MatchString(code) {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_POSTAL_CODE",
			Message:   "postal code must be exactly 6 digits",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	records := lc.locatorService.FindByPostalCode(code)
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "POSTAL_CODE_NOT_FOUND",
			Message:   "no records under postal code " + code,
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.PostcodeResponse{
		PostalCode: code,
		Records:    records,
		Total:      len(records),
	})
}

// GetUsageStats exposes the public lookup counters.
func (lc *LookupController) GetUsageStats(c *gin.Context) {
	c.JSON(http.StatusOK, responses.StatsResponse{
		Usage: lc.locatorService.Stats(),
	})
}

// HealthCheck reports service liveness.
func (lc *LookupController) HealthCheck(c *gin.Context) {
	uptime := time.Since(lc.locatorService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"catalog":  "healthy",
			"geocoder": "healthy",
		},
	})
}

// writeLookupError maps pipeline sentinels to HTTP statuses. Both "no
// address" and "below threshold" are 404s with distinct error codes.
func (lc *LookupController) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoAddress):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "NO_ADDRESS",
			Message:   "no address found for the given location",
			Timestamp: time.Now().Format(time.RFC3339),
		})
	case errors.Is(err, services.ErrBelowThreshold):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "NO_CONFIDENT_MATCH",
			Message:   "no postal code matched with sufficient confidence",
			Timestamp: time.Now().Format(time.RFC3339),
		})
	default:
		lc.logger.Error("lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:     "GEOCODER_ERROR",
			Message:   "upstream geocoding failed: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
