// Package domain defines the value objects and error taxonomy of the
// classroom gateway. All entities are constructed fresh per request; there
// is no cross-request identity.
package domain

// CourseSummary is the normalized listing view of one Classroom course.
type CourseSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Link        string `json:"link"`
	UpdateTime  string `json:"updateTime,omitempty"`
	Section     string `json:"section,omitempty"`
	Room        string `json:"room,omitempty"`
	OwnerID     string `json:"ownerId,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// CourseDetail is the denormalized detail view of one course, merging the
// course record with its topics, coursework and materials.
type CourseDetail struct {
	CourseSummary
	Description string        `json:"description,omitempty"`
	Audience    string        `json:"audience,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Sessions    []SessionItem `json:"sessions"`
	Resources   []Resource    `json:"resources"`
}

// SessionItem is one coursework entry rendered as a course session.
type SessionItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Resource is the normalized representation of any attached material,
// regardless of its remote-specific shape (link, Drive file, video, form).
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Key returns the deduplication key for the resource: the URL when present,
// otherwise a synthetic content key so content-only materials survive
// deduplication without colliding.
func (r Resource) Key() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Title + "|" + r.Description
}

// Topic is a transient lookup record used to resolve session subtitles.
// It is never exposed through the API.
type Topic struct {
	ID   string `json:"topicId"`
	Name string `json:"name"`
}

// Announcement is one course announcement from the activity stream.
type Announcement struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Link       string `json:"link,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}
