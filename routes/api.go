package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postcode-locator/app/controllers"
)

// SetupAPIRoutes registers the versioned API routes.
func SetupAPIRoutes(router *gin.Engine, lookupController *controllers.LookupController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		// Lookup routes
		v1.POST("/lookup", lookupController.Lookup)
		v1.POST("/lookup/query", lookupController.LookupQuery)

		// Catalog routes
		postcodes := v1.Group("/postcodes")
		{
			postcodes.GET("/search", lookupController.SearchPostcodes)
			postcodes.GET("/:code", lookupController.GetPostcode)
		}

		// Usage counters
		v1.GET("/stats", lookupController.GetUsageStats)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
		}

		// Health check route
		v1.GET("/health", lookupController.HealthCheck)
	}
}

// SetupHealthRoutes registers the unversioned probe routes.
func SetupHealthRoutes(router *gin.Engine, lookupController *controllers.LookupController) {
	router.GET("/health", lookupController.HealthCheck)
	router.GET("/ready", lookupController.HealthCheck)
	router.GET("/live", lookupController.HealthCheck)
}

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, lookupController *controllers.LookupController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, lookupController)
	SetupAPIRoutes(router, lookupController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
