package classroom

import (
	"strings"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// Display defaults, kept in the deployment's language like the rest of the
// public site.
const (
	defaultCourseTitle  = "Corso senza titolo"
	defaultCourseLink   = "https://classroom.google.com"
	defaultSessionTitle = "Attività"
	noURLDescription    = "Materiale privo di URL diretto"
)

var workTypeLabels = map[string]string{
	"ASSIGNMENT":               "Compito",
	"MULTIPLE_CHOICE_QUESTION": "Quiz a scelta multipla",
	"SHORT_ANSWER_QUESTION":    "Domanda aperta",
	"ANNOUNCEMENT":             "Annuncio",
}

// formatWorkType humanizes a coursework type; unknown types pass through
// verbatim.
func formatWorkType(workType string) string {
	if label, ok := workTypeLabels[workType]; ok {
		return label
	}
	return workType
}

// toCourseSummary maps one remote course record to the listing shape.
// Records without an id are excluded by the callers, not here.
func toCourseSummary(c course) domain.CourseSummary {
	title := c.Name
	if title == "" {
		title = defaultCourseTitle
	}
	subtitle := c.Section
	if subtitle == "" {
		subtitle = c.EnrollmentCode
	}
	link := c.AlternateLink
	if link == "" {
		link = defaultCourseLink
	}
	updateTime := c.UpdateTime
	if updateTime == "" {
		updateTime = c.CreationTime
	}
	return domain.CourseSummary{
		ID:         c.ID,
		Title:      title,
		Subtitle:   subtitle,
		Link:       link,
		UpdateTime: updateTime,
		Section:    c.Section,
		Room:       c.Room,
		OwnerID:    c.OwnerID,
	}
}

// buildDescription joins the description heading and body, trimmed. Empty
// when both are absent.
func buildDescription(c course) string {
	if c.DescriptionHeading == "" && c.Description == "" {
		return ""
	}
	if c.DescriptionHeading != "" && c.Description != "" {
		return strings.TrimSpace(c.DescriptionHeading + "\n\n" + c.Description)
	}
	return strings.TrimSpace(c.DescriptionHeading + c.Description)
}

// buildTags unions the course subject with the topic names, first
// occurrence wins.
func buildTags(c course, topics []topic) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	add(c.Subject)
	for _, t := range topics {
		add(t.Name)
	}
	return tags
}

// topicIndex builds the topicId -> name lookup used to resolve session
// subtitles.
func topicIndex(topics []topic) map[string]string {
	idx := make(map[string]string, len(topics))
	for _, t := range topics {
		if t.TopicID != "" {
			idx[t.TopicID] = t.Name
		}
	}
	return idx
}

// toSessionItem maps one coursework entry to a session. Subtitle resolution
// order: topic name via topicId, then humanized work type, then empty.
func toSessionItem(w courseWork, topicsByID map[string]string) domain.SessionItem {
	title := w.Title
	if title == "" {
		title = defaultSessionTitle
	}
	subtitle := ""
	if w.TopicID != "" {
		subtitle = topicsByID[w.TopicID]
	}
	if subtitle == "" && w.WorkType != "" {
		subtitle = formatWorkType(w.WorkType)
	}
	return domain.SessionItem{
		ID:       w.ID,
		Title:    title,
		Subtitle: subtitle,
		Summary:  w.Description,
		Link:     w.AlternateLink,
	}
}

// toResource extracts a normalized resource from one attachment, trying the
// four shapes in order: link, Drive file, YouTube video, form. Materials
// with none of the shapes produce a title-only resource when a fallback
// title is supplied, and are dropped otherwise.
func toResource(m material, fallbackTitle string) (domain.Resource, bool) {
	pick := func(title, fallback string) string {
		if title != "" {
			return title
		}
		if fallbackTitle != "" {
			return fallbackTitle
		}
		return fallback
	}

	switch {
	case m.Link != nil && m.Link.URL != "":
		return domain.Resource{
			Title:       pick(m.Link.Title, m.Link.URL),
			Description: m.Link.Description,
			URL:         m.Link.URL,
		}, true
	case m.DriveFile != nil && m.DriveFile.DriveFile != nil:
		f := m.DriveFile.DriveFile
		desc := ""
		if f.AlternateLink != "" {
			desc = "Google Drive"
		}
		return domain.Resource{
			Title:       pick(f.Title, "File Drive"),
			Description: desc,
			URL:         f.AlternateLink,
		}, true
	case m.YoutubeVideo != nil && m.YoutubeVideo.AlternateLink != "":
		return domain.Resource{
			Title:       pick(m.YoutubeVideo.Title, "Video YouTube"),
			Description: "Contenuto video",
			URL:         m.YoutubeVideo.AlternateLink,
		}, true
	case m.Form != nil && m.Form.FormURL != "":
		return domain.Resource{
			Title:       pick(m.Form.Title, "Modulo Google"),
			Description: "Questionario o modulo interattivo",
			URL:         m.Form.FormURL,
		}, true
	}

	if fallbackTitle != "" {
		return domain.Resource{Title: fallbackTitle, Description: noURLDescription}, true
	}
	return domain.Resource{}, false
}

// resourceSet accumulates resources with first-seen-wins deduplication,
// keyed by URL when present and by a synthetic content key otherwise.
type resourceSet struct {
	order []string
	byKey map[string]domain.Resource
}

func newResourceSet() *resourceSet {
	return &resourceSet{byKey: make(map[string]domain.Resource)}
}

func (s *resourceSet) add(r domain.Resource) {
	key := r.Key()
	if _, ok := s.byKey[key]; ok {
		return
	}
	s.byKey[key] = r
	s.order = append(s.order, key)
}

// collect normalizes and adds every attachment of one coursework or
// material entry, using the entry title as the fallback resource title.
func (s *resourceSet) collect(materials []material, fallbackTitle string) {
	for _, m := range materials {
		if r, ok := toResource(m, fallbackTitle); ok {
			s.add(r)
		}
	}
}

// items returns the deduplicated resources in insertion order; never nil.
func (s *resourceSet) items() []domain.Resource {
	out := make([]domain.Resource, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}

// buildCourseDetail assembles the combined detail view from the four
// sub-resource results.
func buildCourseDetail(c course, topics []topic, work []courseWork, extra []courseWorkMaterial) *domain.CourseDetail {
	byID := topicIndex(topics)

	sessions := make([]domain.SessionItem, 0, len(work))
	for _, w := range work {
		if w.ID == "" {
			continue
		}
		sessions = append(sessions, toSessionItem(w, byID))
	}

	// Coursework-embedded materials are collected before standalone ones,
	// so they win deduplication ties.
	set := newResourceSet()
	for _, w := range work {
		set.collect(w.Materials, w.Title)
	}
	for _, m := range extra {
		set.collect(m.Materials, m.Title)
	}

	return &domain.CourseDetail{
		CourseSummary: toCourseSummary(c),
		Description:   buildDescription(c),
		Audience:      c.Room,
		Tags:          buildTags(c, topics),
		Sessions:      sessions,
		Resources:     set.items(),
	}
}

// toAnnouncement maps one remote announcement to the exposed shape.
func toAnnouncement(a announcement) domain.Announcement {
	updateTime := a.UpdateTime
	if updateTime == "" {
		updateTime = a.CreationTime
	}
	return domain.Announcement{
		ID:         a.ID,
		Text:       a.Text,
		Link:       a.AlternateLink,
		UpdateTime: updateTime,
	}
}
