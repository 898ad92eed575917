package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accademia-digitale/classroom-gateway/internal/classroom"
)

// CourseHandler serves the course catalog routes.
type CourseHandler struct {
	catalog classroom.Service
	logger  *slog.Logger
}

// NewCourseHandler creates a course handler.
func NewCourseHandler(catalog classroom.Service, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes mounts the catalog routes on the given group.
func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/classroom/courses", h.ListCourses)
	rg.GET("/classroom/courses/:id", h.GetCourse)
	rg.GET("/classroom/courses/:id/announcements", h.ListAnnouncements)
}

// ListCourses returns the active course list as a bare JSON array.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalog.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Impossibile recuperare l'elenco dei corsi")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse returns the denormalized detail of one course.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.catalog.GetCourseDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Impossibile recuperare il corso richiesto")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListAnnouncements returns the announcements of one course.
func (h *CourseHandler) ListAnnouncements(c *gin.Context) {
	id := c.Param("id")
	anns, err := h.catalog.ListAnnouncements(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Impossibile recuperare gli annunci del corso")
		return
	}
	c.JSON(http.StatusOK, anns)
}
