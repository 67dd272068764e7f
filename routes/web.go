package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes registers the plain informational routes.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Postcode Locator Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Postcode Locator API v1",
				"endpoints": map[string]string{
					"lookup":       "POST /v1/lookup",
					"lookup_query": "POST /v1/lookup/query",
					"search":       "GET /v1/postcodes/search?q=",
					"postcode":     "GET /v1/postcodes/:code",
					"stats":        "GET /v1/stats",
					"health":       "GET /v1/health",
				},
			})
		})

		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "Postcode Locator",
			})
		})
	}
}
