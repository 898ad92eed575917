package services

import (
	"context"
	"time"
)

// HealthStatus represents the health of a component.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the component is fully operational.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusUnhealthy indicates the component is not operational.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	// HealthStatusDegraded indicates the component has issues but the
	// service is still able to answer requests.
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthCheck is the result of one component probe.
type HealthCheck struct {
	Name        string        `json:"name"`
	Status      HealthStatus  `json:"status"`
	Message     string        `json:"message,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
	LastChecked time.Time     `json:"last_checked"`
}

// HealthResponse is the aggregate health report.
type HealthResponse struct {
	Status      HealthStatus  `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	Version     string        `json:"version"`
	Environment string        `json:"environment"`
	Uptime      time.Duration `json:"uptime"`
	Checks      []HealthCheck `json:"checks"`
}

// HealthChecker probes one component.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) HealthCheck
}

// HealthService runs the registered component probes and aggregates their
// statuses: any unhealthy check marks the whole service unhealthy, any
// degraded check marks it degraded.
type HealthService struct {
	startTime time.Time
	version   string
	env       string
	checkers  []HealthChecker
}

// NewHealthService creates a health service.
func NewHealthService(version, env string) *HealthService {
	return &HealthService{
		startTime: time.Now(),
		version:   version,
		env:       env,
	}
}

// RegisterChecker registers a component probe.
func (h *HealthService) RegisterChecker(checker HealthChecker) {
	h.checkers = append(h.checkers, checker)
}

// Check performs all registered probes.
func (h *HealthService) Check(ctx context.Context) HealthResponse {
	checks := make([]HealthCheck, 0, len(h.checkers))
	overall := HealthStatusHealthy

	for _, checker := range h.checkers {
		check := checker.Check(ctx)
		checks = append(checks, check)

		switch check.Status {
		case HealthStatusUnhealthy:
			overall = HealthStatusUnhealthy
		case HealthStatusDegraded:
			if overall == HealthStatusHealthy {
				overall = HealthStatusDegraded
			}
		}
	}

	return HealthResponse{
		Status:      overall,
		Timestamp:   time.Now(),
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.startTime),
		Checks:      checks,
	}
}

// CacheHealthChecker probes a cache backend. A failing cache degrades the
// service rather than marking it unhealthy: the gateway answers without it.
type CacheHealthChecker struct {
	backend CacheBackend
}

// NewCacheHealthChecker creates a cache probe.
func NewCacheHealthChecker(backend CacheBackend) *CacheHealthChecker {
	return &CacheHealthChecker{backend: backend}
}

// Name implements HealthChecker.
func (c *CacheHealthChecker) Name() string { return "cache" }

// Check implements HealthChecker.
func (c *CacheHealthChecker) Check(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{
		Name:        c.Name(),
		Status:      HealthStatusHealthy,
		LastChecked: start,
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.backend.Ping(probeCtx); err != nil {
		check.Status = HealthStatusDegraded
		check.Message = "cache backend unreachable, serving uncached"
		check.Error = err.Error()
	}
	check.Duration = time.Since(start)
	return check
}

// CredentialHealthChecker reports whether the Google credential is fully
// configured. It makes no network call: a token exchange per health probe
// would burn upstream quota.
type CredentialHealthChecker struct {
	missing []string
}

// NewCredentialHealthChecker creates a credential configuration probe.
func NewCredentialHealthChecker(missing []string) *CredentialHealthChecker {
	return &CredentialHealthChecker{missing: missing}
}

// Name implements HealthChecker.
func (c *CredentialHealthChecker) Name() string { return "google_credentials" }

// Check implements HealthChecker.
func (c *CredentialHealthChecker) Check(_ context.Context) HealthCheck {
	now := time.Now()
	check := HealthCheck{
		Name:        c.Name(),
		Status:      HealthStatusHealthy,
		LastChecked: now,
	}
	if len(c.missing) > 0 {
		check.Status = HealthStatusUnhealthy
		check.Message = "Google OAuth credentials missing"
		for i, field := range c.missing {
			if i > 0 {
				check.Error += ", "
			}
			check.Error += field
		}
	}
	return check
}
