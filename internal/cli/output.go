package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatYML  = "yml"
)

// RenderCourses renders a course list in the requested format.
func RenderCourses(courses []domain.CourseSummary, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(courses)
	case formatYAML, formatYML:
		return renderYAML(courses)
	default:
		return renderCoursesTable(courses)
	}
}

// RenderCourseDetail renders one course detail in the requested format.
func RenderCourseDetail(detail *domain.CourseDetail, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(detail)
	case formatYAML, formatYML:
		return renderYAML(detail)
	default:
		return renderCourseDetailTable(detail)
	}
}

// RenderAnnouncements renders an announcement list in the requested format.
func RenderAnnouncements(anns []domain.Announcement, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(anns)
	case formatYAML, formatYML:
		return renderYAML(anns)
	default:
		return renderAnnouncementsTable(anns)
	}
}

func renderCoursesTable(courses []domain.CourseSummary) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Subtitle", "Room", "Updated"})

	for _, course := range courses {
		title := course.Title
		if course.Placeholder {
			title += " (demo)"
		}
		t.AppendRow(table.Row{course.ID, title, course.Subtitle, course.Room, course.UpdateTime})
	}

	t.Render()
	return nil
}

func renderCourseDetailTable(detail *domain.CourseDetail) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendRow(table.Row{"ID", detail.ID})
	t.AppendRow(table.Row{"Title", detail.Title})
	if detail.Subtitle != "" {
		t.AppendRow(table.Row{"Subtitle", detail.Subtitle})
	}
	if detail.Description != "" {
		t.AppendRow(table.Row{"Description", truncate(detail.Description, 80)})
	}
	if detail.Audience != "" {
		t.AppendRow(table.Row{"Audience", detail.Audience})
	}
	if len(detail.Tags) > 0 {
		t.AppendRow(table.Row{"Tags", strings.Join(detail.Tags, ", ")})
	}
	t.AppendRow(table.Row{"Link", detail.Link})
	if detail.Placeholder {
		t.AppendRow(table.Row{"Demo data", "yes"})
	}
	t.Render()

	if len(detail.Sessions) > 0 {
		s := table.NewWriter()
		s.SetOutputMirror(os.Stdout)
		s.AppendHeader(table.Row{"Session", "Subtitle", "Summary"})
		for _, session := range detail.Sessions {
			s.AppendRow(table.Row{session.Title, session.Subtitle, truncate(session.Summary, 50)})
		}
		s.Render()
	}

	if len(detail.Resources) > 0 {
		r := table.NewWriter()
		r.SetOutputMirror(os.Stdout)
		r.AppendHeader(table.Row{"Resource", "Description", "URL"})
		for _, resource := range detail.Resources {
			r.AppendRow(table.Row{resource.Title, resource.Description, resource.URL})
		}
		r.Render()
	}
	return nil
}

func renderAnnouncementsTable(anns []domain.Announcement) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Text", "Updated"})
	for _, ann := range anns {
		t.AppendRow(table.Row{ann.ID, truncate(ann.Text, 60), ann.UpdateTime})
	}
	t.Render()
	return nil
}

func renderJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(v interface{}) error {
	return yaml.NewEncoder(os.Stdout).Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
