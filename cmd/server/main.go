package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pantryplan/grocery-service/config"
	"github.com/pantryplan/grocery-service/internal/catalog"
	"github.com/pantryplan/grocery-service/internal/compare"
	"github.com/pantryplan/grocery-service/internal/database"
	"github.com/pantryplan/grocery-service/internal/handlers"
	"github.com/pantryplan/grocery-service/internal/middleware"
	"github.com/pantryplan/grocery-service/internal/oracle"
	"github.com/pantryplan/grocery-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Str("oracle", cfg.Oracle.Backend).Msg("Starting grocery service")

	ctx := context.Background()

	cleanup := telemetry.MustInit(ctx, telemetry.FromAppConfig(cfg.Telemetry.Enabled, cfg.Telemetry.Endpoint))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	priceOracle, history, quoteCache, err := buildOracle(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build price oracle")
	}
	defer database.Close()

	cat := catalog.Default()
	svc := compare.NewService(cat, priceOracle, history, rankingConfig(cfg.Ranking), *logger)
	h := handlers.New(svc)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	setupRequestLogging(router, logger)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	grocery := router.Group("/grocery")
	grocery.Use(middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	}))
	{
		grocery.POST("/compare", h.Compare)
		grocery.GET("/nearby", h.Nearby)
		grocery.GET("/deals", h.Deals)
		grocery.GET("/price-history", h.History)
	}

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuth(cfg.Internal.APIKey))
	{
		internal.GET("/health", handlers.Health)
		internal.GET("/cache/stats", handlers.CacheStats(quoteCache))
		internal.POST("/cache/purge", handlers.CachePurge(quoteCache))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// buildOracle constructs the configured oracle backend and wraps it with the
// quote cache and logging decorators. History lookups go straight to the
// backend since trend queries are not worth caching. The returned cache is
// nil when caching is disabled.
func buildOracle(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (oracle.PriceOracle, oracle.HistorySource, *oracle.Cached, error) {
	var backend oracle.PriceOracle

	switch cfg.Oracle.Backend {
	case "synthetic", "":
		backend = oracle.NewSynthetic(catalog.Default())
	case "http":
		if cfg.Oracle.BaseURL == "" {
			return nil, nil, nil, fmt.Errorf("oracle backend %q requires base_url", cfg.Oracle.Backend)
		}
		backend = oracle.NewHTTP(oracle.HTTPConfig{
			BaseURL:           cfg.Oracle.BaseURL,
			APIKey:            cfg.Oracle.APIKey,
			Timeout:           cfg.Oracle.RequestTimeout,
			RequestsPerSecond: cfg.Oracle.RequestsPerSecond,
			Burst:             cfg.Oracle.Burst,
		})
	case "postgres":
		dbURL := config.GetDatabaseURL()
		if dbURL == "" {
			return nil, nil, nil, fmt.Errorf("oracle backend %q requires DATABASE_URL", cfg.Oracle.Backend)
		}
		if err := database.Connect(
			ctx,
			dbURL,
			cfg.Database.MaxConnections,
			cfg.Database.MinConnections,
			cfg.Database.MaxConnLifetime,
			cfg.Database.MaxConnIdleTime,
		); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info().Msg("Database connected")
		backend = oracle.NewPostgres(database.Pool(), catalog.Default())
	default:
		return nil, nil, nil, fmt.Errorf("unknown oracle backend %q", cfg.Oracle.Backend)
	}

	history, _ := backend.(oracle.HistorySource)

	var cache *oracle.Cached
	if cfg.Oracle.CacheEnabled {
		cache = oracle.NewCached(backend, cfg.Oracle.CacheTTL)
		backend = cache
	}

	return oracle.NewLogged(backend, *logger), history, cache, nil
}

func rankingConfig(cfg config.RankingConfig) *compare.Config {
	return &compare.Config{
		PriceWeight:         cfg.PriceWeight,
		DistanceWeight:      cfg.DistanceWeight,
		PreferenceBonus:     cfg.PreferenceBonus,
		MaxConcurrentQuotes: int64(cfg.MaxConcurrentQuotes),
		QuoteTimeout:        cfg.QuoteTimeout,
		MaxItems:            cfg.MaxItems,
	}
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "grocery-service").Logger()
	return &logger
}

func setupRequestLogging(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("HTTP request")
	})
}
