// Package services provides the response cache and health monitoring that
// sit around the classroom aggregation core.
package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/accademia-digitale/classroom-gateway/internal/classroom"
	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// CacheBackend is the storage interface behind the response cache.
type CacheBackend interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Cache key layout.
const (
	courseListKey    = "courses:list"
	courseDetailKey  = "courses:detail:"
	defaultListTTL   = 60 * time.Second
	defaultDetailTTL = 30 * time.Second
)

// CacheConfig configures the response cache TTLs.
type CacheConfig struct {
	ListTTL   time.Duration
	DetailTTL time.Duration
}

// CachedCatalog wraps a classroom.Service with a short-TTL response cache.
// Concurrent misses on the same key are collapsed into a single upstream
// call. Failures are never cached; a NotFoundError is a real result but is
// also not cached, so a course published after a miss appears immediately.
type CachedCatalog struct {
	next    classroom.Service
	backend CacheBackend
	config  CacheConfig
	group   singleflight.Group
	logger  *slog.Logger
}

// NewCachedCatalog wraps next with the response cache.
func NewCachedCatalog(next classroom.Service, backend CacheBackend, config CacheConfig, logger *slog.Logger) *CachedCatalog {
	if config.ListTTL <= 0 {
		config.ListTTL = defaultListTTL
	}
	if config.DetailTTL <= 0 {
		config.DetailTTL = defaultDetailTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{next: next, backend: backend, config: config, logger: logger}
}

// ListCourses serves the course list from cache when fresh.
func (c *CachedCatalog) ListCourses(ctx context.Context) ([]domain.CourseSummary, error) {
	var cached []domain.CourseSummary
	if c.lookup(ctx, courseListKey, &cached) {
		return cached, nil
	}

	v, err, _ := c.group.Do(courseListKey, func() (interface{}, error) {
		courses, err := c.next.ListCourses(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, courseListKey, courses, c.config.ListTTL)
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CourseSummary), nil
}

// GetCourseDetail serves one course detail from cache when fresh.
func (c *CachedCatalog) GetCourseDetail(ctx context.Context, id string) (*domain.CourseDetail, error) {
	key := courseDetailKey + id
	var cached domain.CourseDetail
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		detail, err := c.next.GetCourseDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, detail, c.config.DetailTTL)
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CourseDetail), nil
}

// ListAnnouncements is not cached: the activity stream is the most volatile
// read and the upstream call is cheap.
func (c *CachedCatalog) ListAnnouncements(ctx context.Context, id string) ([]domain.Announcement, error) {
	return c.next.ListAnnouncements(ctx, id)
}

// lookup reads and decodes a cache entry. Backend failures count as misses.
func (c *CachedCatalog) lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		if !domain.IsNotFound(err) {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache entry corrupt, discarding", "key", key, "error", err)
		_ = c.backend.Delete(ctx, key)
		return false
	}
	return true
}

// store writes a cache entry. Write failures are logged and ignored: the
// cache is an optimization, never a dependency.
func (c *CachedCatalog) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
