package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postcode-locator/app/config"
	"github.com/postcode-locator/app/controllers"
	"github.com/postcode-locator/app/services"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/geocode"
	"github.com/postcode-locator/internal/matcher"
	"github.com/postcode-locator/internal/normalizer"
	"github.com/postcode-locator/routes"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Postcode Locator Service")

	// 3. Reference catalog
	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("Failed to load postal code catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Int("records", cat.Len()))

	// 4. Matcher
	expander := normalizer.NewExpander(normalizer.NewTextNormalizer(), nil)
	m := matcher.New(cat, expander, logger)

	// 5. Geocoder client
	apiKey := viper.GetString("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		logger.Fatal("GOOGLE_MAPS_API_KEY is required")
	}
	geocoder := geocode.NewClient(apiKey, config.GeocoderTimeout(), logger)

	// 6. Cache tiers: hybrid when both Redis and MongoDB are configured,
	// a single tier when only one is, in-process LRU otherwise.
	cacheService, mongoClient := initCache(logger)
	defer func() {
		if err := cacheService.Close(); err != nil {
			logger.Error("Error closing cache", zap.Error(err))
		}
		if mongoClient != nil {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}
	}()

	// 7. Services
	locatorService := services.NewLocatorService(geocoder, m, cat, cacheService, config.C.Thresholds.Accept, logger)
	adminService := services.NewAdminService(locatorService, cat, cacheService, logger)

	// 8. Controllers
	lookupController := controllers.NewLookupController(locatorService, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	// 9. Router
	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, lookupController, adminController)

	// 10. Serve with graceful shutdown
	port := getEnv("APP_PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("Postcode Locator Service listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

// loadConfig loads the YAML config file, then lets env vars override it.
func loadConfig() {
	if path := getEnv("CONFIG_PATH", "./config/locator.yaml"); path != "" {
		if err := config.Load(path); err != nil {
			log.Printf("Warning: cannot read config file %s: %v", path, err)
		}
	}

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.AutomaticEnv()
}

// initLogger builds the structured logger for the current environment.
func initLogger() *zap.Logger {
	var cfg zap.Config
	if getEnv("APP_ENV", "development") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initCache picks the deepest cache stack the environment supports. Returns
// the mongo client when one was opened so main can disconnect it on exit.
func initCache(logger *zap.Logger) (services.ICacheService, *mongo.Client) {
	redisURL := os.Getenv("REDIS_URL")
	mongoURL := os.Getenv("MONGO_URL")
	l1Size := getEnvInt("L1_CACHE_SIZE", 10000)

	var redisCache *services.RedisCacheService
	if redisURL != "" {
		var err error
		redisCache, err = services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable", zap.Error(err))
			redisCache = nil
		}
	}

	var mongoCache *services.MongoCacheService
	var mongoClient *mongo.Client
	if mongoURL != "" {
		db, client, err := connectMongo(mongoURL, logger)
		if err != nil {
			logger.Warn("MongoDB unavailable", zap.Error(err))
		} else {
			mongoClient = client
			mongoCache, err = services.NewMongoCacheService(db, l1Size, logger)
			if err != nil {
				logger.Warn("MongoDB cache init failed", zap.Error(err))
				mongoCache = nil
			}
		}
	}

	switch {
	case redisCache != nil && mongoCache != nil:
		logger.Info("Using hybrid cache (Redis + MongoDB)")
		if err := mongoCache.WarmUp(context.Background(), l1Size/2); err != nil {
			logger.Warn("Cache warm up failed", zap.Error(err))
		}
		return services.NewHybridCacheService(redisCache, mongoCache, logger), mongoClient
	case redisCache != nil:
		logger.Info("Using Redis cache")
		return redisCache, nil
	case mongoCache != nil:
		logger.Info("Using MongoDB cache")
		return mongoCache, mongoClient
	default:
		logger.Info("Using in-memory cache")
		memCache, err := services.NewMemoryCacheService(l1Size, logger)
		if err != nil {
			logger.Fatal("Failed to initialize memory cache", zap.Error(err))
		}
		return memCache, nil
	}
}

// connectMongo opens and pings a MongoDB connection.
func connectMongo(mongoURL string, logger *zap.Logger) (*mongo.Database, *mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	dbName := getEnv("MONGO_DATABASE", "postcode_locator")
	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName), client, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
