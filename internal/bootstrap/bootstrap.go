// Package bootstrap assembles the gateway's service stack from validated
// configuration. Both the HTTP server and the CLI build their catalog here
// so the wiring exists exactly once.
package bootstrap

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/accademia-digitale/classroom-gateway/internal/classroom"
	"github.com/accademia-digitale/classroom-gateway/internal/config"
	"github.com/accademia-digitale/classroom-gateway/internal/services"
)

// NewLogger builds the process logger: JSON on stderr at the configured
// level.
func NewLogger(cfg *config.AppConfig) *slog.Logger {
	var level slog.Level
	switch cfg.GetLogLevel() {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Catalog is the assembled read stack plus the resources it owns.
type Catalog struct {
	Service classroom.Service
	// CacheBackend is non-nil when the response cache is enabled; the
	// caller registers it with the health service and closes it on
	// shutdown when it is closable.
	CacheBackend services.CacheBackend
}

// BuildCatalog wires aggregator, optional response cache and optional
// fallback policy, innermost first, per the configuration.
func BuildCatalog(cfg *config.AppConfig, logger *slog.Logger) *Catalog {
	tokens := classroom.NewTokenProvider(classroom.Credential{
		ClientID:     cfg.GetGoogleClientID(),
		ClientSecret: cfg.GetGoogleClientSecret(),
		RefreshToken: cfg.GetGoogleRefreshToken(),
	})

	var service classroom.Service = classroom.NewAggregator(tokens, logger,
		classroom.WithPageSize(cfg.GetUpstreamPageSize()),
		classroom.WithHTTPClient(&http.Client{Timeout: cfg.GetUpstreamTimeout()}),
	)

	catalog := &Catalog{}

	if cfg.GetCacheEnabled() {
		switch cfg.GetCacheBackend() {
		case "redis":
			catalog.CacheBackend = services.NewRedisCacheBackend(
				cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB(), "classroom-gateway:")
		default:
			catalog.CacheBackend = services.NewMemoryCacheBackend()
		}
		service = services.NewCachedCatalog(service, catalog.CacheBackend, services.CacheConfig{
			ListTTL:   cfg.GetCacheListTTL(),
			DetailTTL: cfg.GetCacheDetailTTL(),
		}, logger)
	}

	// The fallback wraps the cache so placeholder data is never cached.
	if cfg.GetFallbackEnabled() {
		service = classroom.NewFallback(service, logger)
	}

	catalog.Service = service
	return catalog
}
