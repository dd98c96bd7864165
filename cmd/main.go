package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"supplyhealth-service/internal/dataset"
	"supplyhealth-service/internal/engine"
	"supplyhealth-service/internal/handler"
	"supplyhealth-service/internal/middleware"
	"supplyhealth-service/internal/service"
	"supplyhealth-service/pkg/config"
	"supplyhealth-service/pkg/database"
	"supplyhealth-service/pkg/jwtutil"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/pkg/metrics"
	"supplyhealth-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting supply health service...", zap.String("environment", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Prometheus metrics
	evalMetrics := prometheus.NewMetrics(cfg.Metrics.Prefix, nil)
	httpMetrics := metrics.NewHTTPMetrics(config.ServiceName, nil)
	log.Info("Prometheus metrics initialized")

	// Default dataset
	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatal("Failed to initialize default dataset", zap.Error(err))
	}
	store := dataset.NewStore(provider, log, evalMetrics.RecordReload)
	if err := store.Reload(ctx); err != nil {
		log.Warn("Serving an empty default dataset until the next reload", zap.Error(err))
	}
	if cfg.Data.Source == config.DataSourceFiles && cfg.Data.Watch {
		go func() {
			if err := store.Watch(ctx, cfg.Data.Dir); err != nil {
				log.Error("Default dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	scenarios, err := loadScenarios(cfg.Data.Dir)
	if err != nil {
		log.Fatal("Failed to load scenarios", zap.Error(err))
	}
	log.Info("Scenarios loaded", zap.Int("count", len(scenarios)))

	evaluations := handler.NewEvaluationHandler(service.NewEvaluationService(store, evalMetrics, scenarios))

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dB", cfg.Server.UploadMaxBytes)))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.FromContext(c).Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Float64("duration_s", time.Since(start).Seconds()),
				zap.String("ip", c.RealIP()),
			)
			return nil
		}
	})

	// Routes
	// Public routes that don't require authentication
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler(nil)))

	// API routes
	api := e.Group("/api")
	if cfg.Auth.Enabled {
		clients, err := jwtutil.ParseClients(cfg.Auth.Clients)
		if err != nil {
			log.Fatal("Invalid API_CLIENTS", zap.Error(err))
		}
		tokens := handler.NewTokenHandler(cfg.JWT.ExpirationHours, evalMetrics)
		e.POST("/auth/token", tokens.IssueToken, middleware.ClientAuthMiddleware(clients, evalMetrics))

		api.Use(middleware.AuthMiddleware(evalMetrics))
		log.Info("API authentication enabled", zap.Int("clients", len(clients)))
	}
	evaluations.RegisterRoutes(api)

	// Start server
	go func() {
		port := cfg.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// newProvider selects the default dataset source from configuration
func newProvider(cfg *config.Config) (dataset.Provider, error) {
	if cfg.Data.Source != config.DataSourceDatabase {
		return dataset.NewFileProvider(cfg.Data.Dir), nil
	}

	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().Info("Database connection established",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName),
	)
	return dataset.NewDBProvider(db), nil
}

// loadScenarios reads scenarios.yaml from the data directory, falling back to
// the demo scenarios when it is absent
func loadScenarios(dir string) ([]engine.Scenario, error) {
	scenarios, err := engine.LoadScenarios(filepath.Join(dir, "scenarios.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return engine.DemoScenarios(), nil
	}
	return scenarios, err
}
