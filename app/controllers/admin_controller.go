package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postcode-locator/app/responses"
	"github.com/postcode-locator/app/services"
	"go.uber.org/zap"
)

// AdminController handles the operational endpoints.
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController creates an AdminController.
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// GetStats returns uptime, lookup counters, catalog shape and cache activity.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("stats collection failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "STATS_ERROR",
			Message:   "could not collect system stats: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// InvalidateCache drops every cached lookup.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.adminService.InvalidateCache(c.Request.Context()); err != nil {
		ac.logger.Error("cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CACHE_ERROR",
			Message:   "could not invalidate cache: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "lookup cache invalidated",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
