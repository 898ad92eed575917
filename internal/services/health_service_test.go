package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

type staticChecker struct {
	name   string
	status HealthStatus
}

func (s staticChecker) Name() string { return s.name }

func (s staticChecker) Check(context.Context) HealthCheck {
	return HealthCheck{Name: s.name, Status: s.status, LastChecked: time.Now()}
}

func TestHealthServiceAggregation(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		expected HealthStatus
	}{
		{"no checkers", nil, HealthStatusHealthy},
		{"all healthy", []HealthStatus{HealthStatusHealthy, HealthStatusHealthy}, HealthStatusHealthy},
		{"one degraded", []HealthStatus{HealthStatusHealthy, HealthStatusDegraded}, HealthStatusDegraded},
		{"one unhealthy", []HealthStatus{HealthStatusDegraded, HealthStatusUnhealthy}, HealthStatusUnhealthy},
		{"unhealthy before degraded", []HealthStatus{HealthStatusUnhealthy, HealthStatusDegraded}, HealthStatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHealthService("test", "development")
			for i, status := range tt.statuses {
				svc.RegisterChecker(staticChecker{name: string(rune('a' + i)), status: status})
			}

			report := svc.Check(context.Background())
			assert.Equal(t, tt.expected, report.Status)
			assert.Len(t, report.Checks, len(tt.statuses))
			assert.Equal(t, "test", report.Version)
			assert.Equal(t, "development", report.Environment)
		})
	}
}

type failingBackend struct{}

func (failingBackend) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, domain.NewNotFoundError("CACHE_MISS", "cache miss")
}
func (failingBackend) Delete(context.Context, string) error { return nil }
func (failingBackend) Ping(context.Context) error {
	return domain.NewInternalError("REDIS_DOWN", "connection refused", nil)
}

func TestCacheHealthChecker(t *testing.T) {
	t.Run("reachable backend is healthy", func(t *testing.T) {
		check := NewCacheHealthChecker(NewMemoryCacheBackend()).Check(context.Background())
		assert.Equal(t, HealthStatusHealthy, check.Status)
	})

	t.Run("unreachable backend degrades", func(t *testing.T) {
		check := NewCacheHealthChecker(failingBackend{}).Check(context.Background())
		assert.Equal(t, HealthStatusDegraded, check.Status)
		assert.Contains(t, check.Error, "connection refused")
	})
}

func TestCredentialHealthChecker(t *testing.T) {
	t.Run("complete credential is healthy", func(t *testing.T) {
		check := NewCredentialHealthChecker(nil).Check(context.Background())
		assert.Equal(t, HealthStatusHealthy, check.Status)
	})

	t.Run("missing fields are unhealthy and named", func(t *testing.T) {
		check := NewCredentialHealthChecker([]string{"GOOGLE_CLIENT_ID", "GOOGLE_REFRESH_TOKEN"}).Check(context.Background())
		require.Equal(t, HealthStatusUnhealthy, check.Status)
		assert.Equal(t, "GOOGLE_CLIENT_ID, GOOGLE_REFRESH_TOKEN", check.Error)
	})
}
