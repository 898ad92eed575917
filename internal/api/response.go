// Package api exposes the gateway's HTTP surface: the course catalog
// routes and the health probes. Handlers perform no business
// classification; they map the domain error taxonomy onto transport status
// codes and the stable {message, detail} error shape the site consumes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accademia-digitale/classroom-gateway/internal/api/middleware"
	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

// ErrorBody is the JSON error envelope: a stable human-readable message
// plus an optional diagnostic detail that is safe to log.
type ErrorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError logs the classified failure and writes the transport
// mapping: NotFoundError becomes 404 {message}, everything else becomes
// 500 {message, detail} with the endpoint's stable message.
func respondError(c *gin.Context, logger *slog.Logger, err error, message string) {
	logger.Error("request failed",
		"request_id", middleware.GetRequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error_type", string(domain.TypeOf(err)),
		"error", err,
	)

	if domain.IsNotFound(err) {
		c.JSON(http.StatusNotFound, ErrorBody{Message: "Corso non trovato su Google Classroom"})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: message, Detail: err.Error()})
}
