package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingService counts upstream calls and optionally delays them so tests
// can observe request collapsing.
type countingService struct {
	listCalls   int32
	detailCalls int32
	annCalls    int32
	delay       time.Duration
	err         error
}

func (s *countingService) ListCourses(context.Context) ([]domain.CourseSummary, error) {
	atomic.AddInt32(&s.listCalls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return []domain.CourseSummary{{ID: "c1", Title: "Latino"}}, nil
}

func (s *countingService) GetCourseDetail(_ context.Context, id string) (*domain.CourseDetail, error) {
	atomic.AddInt32(&s.detailCalls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CourseDetail{
		CourseSummary: domain.CourseSummary{ID: id, Title: "Latino"},
		Sessions:      []domain.SessionItem{},
		Resources:     []domain.Resource{},
	}, nil
}

func (s *countingService) ListAnnouncements(context.Context, string) ([]domain.Announcement, error) {
	atomic.AddInt32(&s.annCalls, 1)
	return []domain.Announcement{}, nil
}

func TestCachedCatalogListHit(t *testing.T) {
	next := &countingService{}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{}, discardLogger())

	first, err := catalog.ListCourses(context.Background())
	require.NoError(t, err)
	second, err := catalog.ListCourses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.listCalls), "second read should be served from cache")
}

func TestCachedCatalogDetailHit(t *testing.T) {
	next := &countingService{}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{}, discardLogger())

	first, err := catalog.GetCourseDetail(context.Background(), "c1")
	require.NoError(t, err)
	second, err := catalog.GetCourseDetail(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.detailCalls))

	// A different id is a different key.
	_, err = catalog.GetCourseDetail(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.detailCalls))
}

func TestCachedCatalogExpiry(t *testing.T) {
	next := &countingService{}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{ListTTL: 30 * time.Millisecond}, discardLogger())

	_, err := catalog.ListCourses(context.Background())
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = catalog.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.listCalls), "expired entry should trigger a fresh upstream read")
}

func TestCachedCatalogNeverCachesFailures(t *testing.T) {
	next := &countingService{err: domain.NewUpstreamError("UPSTREAM_STATUS", "bad gateway", 502, nil)}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{}, discardLogger())

	_, err := catalog.ListCourses(context.Background())
	require.Error(t, err)
	_, err = catalog.ListCourses(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&next.listCalls), "failures must not be served from cache")
}

func TestCachedCatalogCollapsesConcurrentMisses(t *testing.T) {
	next := &countingService{delay: 50 * time.Millisecond}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{}, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := catalog.ListCourses(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&next.listCalls), "concurrent misses on one key should collapse into a single upstream call")
}

func TestCachedCatalogAnnouncementsPassThrough(t *testing.T) {
	next := &countingService{}
	catalog := NewCachedCatalog(next, NewMemoryCacheBackend(), CacheConfig{}, discardLogger())

	for i := 0; i < 3; i++ {
		_, err := catalog.ListAnnouncements(context.Background(), "c1")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&next.annCalls), "announcements are never cached")
}

func TestCachedCatalogSurvivesCorruptEntries(t *testing.T) {
	next := &countingService{}
	backend := NewMemoryCacheBackend()
	catalog := NewCachedCatalog(next, backend, CacheConfig{}, discardLogger())

	require.NoError(t, backend.Set(context.Background(), courseListKey, []byte("not json"), time.Minute))

	courses, err := catalog.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.listCalls), "corrupt entry counts as a miss")
}

func TestMemoryCacheBackend(t *testing.T) {
	backend := NewMemoryCacheBackend()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "k", []byte("v"), time.Minute))
		value, err := backend.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
	})

	t.Run("miss is a not found error", func(t *testing.T) {
		_, err := backend.Get(ctx, "absent")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "gone", []byte("v"), time.Minute))
		require.NoError(t, backend.Delete(ctx, "gone"))
		_, err := backend.Get(ctx, "gone")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
		time.Sleep(40 * time.Millisecond)
		_, err := backend.Get(ctx, "short")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("non positive ttl stores nothing", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "zero", []byte("v"), 0))
		_, err := backend.Get(ctx, "zero")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, backend.Ping(ctx))
	})
}
