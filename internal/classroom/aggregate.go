package classroom

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// Service is the read surface the gateway offers to its web layer and CLI.
type Service interface {
	ListCourses(ctx context.Context) ([]domain.CourseSummary, error)
	GetCourseDetail(ctx context.Context, id string) (*domain.CourseDetail, error)
	ListAnnouncements(ctx context.Context, id string) ([]domain.Announcement, error)
}

// Aggregator implements Service against the live Classroom API. It obtains
// a bearer token per operation, fans out the detail sub-fetches and merges
// the results into the normalized catalog shapes.
type Aggregator struct {
	tokens     *TokenProvider
	logger     *slog.Logger
	clientOpts []ClientOption
}

// NewAggregator creates an aggregator. Client options apply to every
// Classroom client the aggregator constructs.
func NewAggregator(tokens *TokenProvider, logger *slog.Logger, opts ...ClientOption) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{tokens: tokens, logger: logger, clientOpts: opts}
}

// client obtains an access token and wraps it in an authenticated client.
// ConfigError and AuthError from the token provider propagate unmodified.
func (a *Aggregator) client(ctx context.Context) (*Client, error) {
	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(token, a.clientOpts...), nil
}

// ListCourses returns the active courses. Records without an id are
// excluded; an empty upstream list is an empty result, not an error.
func (a *Aggregator) ListCourses(ctx context.Context) ([]domain.CourseSummary, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := client.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CourseSummary, 0, len(courses))
	for _, c := range courses {
		if c.ID == "" {
			a.logger.Warn("skipping course record without id")
			continue
		}
		out = append(out, toCourseSummary(c))
	}
	return out, nil
}

// GetCourseDetail builds the combined detail view for one course. The four
// sub-fetches (course, topics, coursework, materials) are issued
// concurrently, bounding latency to one round trip plus the slowest call.
// The course fetch is load-bearing: its 404 fails the whole operation with
// NotFoundError. The secondary fetches are best-effort and degrade to
// empty lists on failure.
func (a *Aggregator) GetCourseDetail(ctx context.Context, id string) (*domain.CourseDetail, error) {
	if id == "" {
		return nil, domain.NewValidationError("MISSING_COURSE_ID", "course id is required", nil)
	}
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}

	var (
		crs       *course
		topics    []topic
		work      []courseWork
		materials []courseWorkMaterial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		crs, err = client.GetCourse(gctx, id)
		return err
	})
	g.Go(func() error {
		res, err := client.ListTopics(gctx, id)
		if err != nil {
			a.logSecondaryFailure("topics", id, err)
			return nil
		}
		topics = res
		return nil
	})
	g.Go(func() error {
		res, err := client.ListCourseWork(gctx, id)
		if err != nil {
			a.logSecondaryFailure("courseWork", id, err)
			return nil
		}
		work = res
		return nil
	})
	g.Go(func() error {
		res, err := client.ListCourseWorkMaterials(gctx, id)
		if err != nil {
			a.logSecondaryFailure("courseWorkMaterials", id, err)
			return nil
		}
		materials = res
		return nil
	})

	if err := g.Wait(); err != nil {
		if domain.IsNotFound(err) {
			return nil, courseNotFound(id)
		}
		return nil, err
	}
	if crs == nil || crs.ID == "" {
		return nil, courseNotFound(id)
	}

	return buildCourseDetail(*crs, topics, work, materials), nil
}

// ListAnnouncements returns the announcements of one course.
func (a *Aggregator) ListAnnouncements(ctx context.Context, id string) ([]domain.Announcement, error) {
	if id == "" {
		return nil, domain.NewValidationError("MISSING_COURSE_ID", "course id is required", nil)
	}
	client, err := a.client(ctx)
	if err != nil {
		return nil, err
	}
	anns, err := client.ListAnnouncements(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, courseNotFound(id)
		}
		return nil, err
	}

	out := make([]domain.Announcement, 0, len(anns))
	for _, a := range anns {
		out = append(out, toAnnouncement(a))
	}
	return out, nil
}

func (a *Aggregator) logSecondaryFailure(resource, courseID string, err error) {
	a.logger.Warn("secondary fetch failed, substituting empty result",
		"resource", resource,
		"course_id", courseID,
		"error", err,
	)
}

func courseNotFound(id string) error {
	return domain.NewNotFoundError("COURSE_NOT_FOUND", "course "+id+" not found on Google Classroom")
}
