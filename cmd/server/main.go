// Package main provides the entry point for the classroom gateway server.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/accademia-digitale/classroom-gateway/internal/api"
	"github.com/accademia-digitale/classroom-gateway/internal/api/middleware"
	"github.com/accademia-digitale/classroom-gateway/internal/bootstrap"
	"github.com/accademia-digitale/classroom-gateway/internal/config"
	"github.com/accademia-digitale/classroom-gateway/internal/services"
)

const version = "1.0.0"

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Load .env files before reading configuration.
	envLoader := config.NewEnvLoader(".")
	_ = envLoader.LoadEnvFiles(config.NewConfig().GetEnvironment())

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg)
	catalog := bootstrap.BuildCatalog(cfg, logger)
	defer closeCatalog(catalog)

	health := services.NewHealthService(version, cfg.GetEnvironment())
	health.RegisterChecker(services.NewCredentialHealthChecker(cfg.MissingGoogleCredentials()))
	if catalog.CacheBackend != nil {
		health.RegisterChecker(services.NewCacheHealthChecker(catalog.CacheBackend))
	}

	router := setupRouter(cfg, catalog, health, logger)

	server := &http.Server{
		Addr:         ":" + cfg.GetServerPort(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.GetEnvironment())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// setupRouter configures the Gin router with the middleware stack and the
// catalog and health routes.
func setupRouter(cfg *config.AppConfig, catalog *bootstrap.Catalog, health *services.HealthService, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.DefaultLoggingMiddleware())
	if cfg.IsProduction() {
		router.Use(middleware.DefaultRecoveryMiddleware())
	} else {
		router.Use(middleware.DevelopmentRecoveryMiddleware())
	}
	router.Use(middleware.CORSMiddleware(cfg.GetCORSAllowedOrigins()))

	api.NewHealthHandler(health).RegisterRoutes(router)
	api.NewCourseHandler(catalog.Service, logger).RegisterRoutes(router.Group("/api"))

	return router
}

func closeCatalog(catalog *bootstrap.Catalog) {
	if closer, ok := catalog.CacheBackend.(io.Closer); ok {
		_ = closer.Close()
	}
}
