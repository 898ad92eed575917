package classroom

import (
	"context"
	"log/slog"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// Fallback wraps a Service and substitutes a fixed placeholder dataset when
// configuration or authentication failures would otherwise leave the site
// with nothing to render. Every substituted object carries the placeholder
// tag so demo data can never masquerade as live catalog content, and each
// activation is logged. NotFoundError always propagates: absence of a
// specific course is a real result.
type Fallback struct {
	next   Service
	logger *slog.Logger
}

// NewFallback wraps next with the fallback policy.
func NewFallback(next Service, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{next: next, logger: logger}
}

// ListCourses returns the live list, or the placeholder list on
// configuration and authentication failures.
func (f *Fallback) ListCourses(ctx context.Context) ([]domain.CourseSummary, error) {
	courses, err := f.next.ListCourses(ctx)
	if err != nil && canFallback(err) {
		f.logger.Warn("serving placeholder course list", "reason", err)
		return placeholderCourses(), nil
	}
	return courses, err
}

// GetCourseDetail returns the live detail, or a placeholder detail on
// configuration and authentication failures.
func (f *Fallback) GetCourseDetail(ctx context.Context, id string) (*domain.CourseDetail, error) {
	detail, err := f.next.GetCourseDetail(ctx, id)
	if err != nil && canFallback(err) {
		f.logger.Warn("serving placeholder course detail", "course_id", id, "reason", err)
		return placeholderDetail(id), nil
	}
	return detail, err
}

// ListAnnouncements returns the live announcements, or an empty list on
// configuration and authentication failures. There is no placeholder
// announcement content.
func (f *Fallback) ListAnnouncements(ctx context.Context, id string) ([]domain.Announcement, error) {
	anns, err := f.next.ListAnnouncements(ctx, id)
	if err != nil && canFallback(err) {
		f.logger.Warn("serving empty placeholder announcements", "course_id", id, "reason", err)
		return []domain.Announcement{}, nil
	}
	return anns, err
}

// canFallback reports whether the failure class is eligible for placeholder
// substitution. NotFoundError and UpstreamError never are.
func canFallback(err error) bool {
	return domain.IsConfig(err) || domain.IsAuth(err)
}

// placeholderCourses is the fixed demo dataset shown while credentials are
// missing or rejected.
func placeholderCourses() []domain.CourseSummary {
	return []domain.CourseSummary{
		{
			ID:          "demo-umanesimo-digitale",
			Title:       "Umanesimo Digitale",
			Subtitle:    "Corso introduttivo",
			Link:        defaultCourseLink,
			Placeholder: true,
		},
		{
			ID:          "demo-filosofia-e-reti",
			Title:       "Filosofia e Reti",
			Subtitle:    "Seminario",
			Link:        defaultCourseLink,
			Placeholder: true,
		},
	}
}

// placeholderDetail builds a placeholder detail view. When the requested id
// matches a placeholder course its summary is reused; otherwise a generic
// placeholder carries the requested id so the consuming page still renders.
func placeholderDetail(id string) *domain.CourseDetail {
	summary := domain.CourseSummary{
		ID:          id,
		Title:       defaultCourseTitle,
		Link:        defaultCourseLink,
		Placeholder: true,
	}
	for _, c := range placeholderCourses() {
		if c.ID == id {
			summary = c
			break
		}
	}
	return &domain.CourseDetail{
		CourseSummary: summary,
		Description:   "Contenuto dimostrativo: Google Classroom non è al momento raggiungibile.",
		Sessions:      []domain.SessionItem{},
		Resources:     []domain.Resource{},
	}
}
