package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RecoveryConfig holds configuration for the panic recovery middleware.
type RecoveryConfig struct {
	// PrintStack determines whether the stack trace is written to the log.
	PrintStack bool
	// IncludeDetailInResponse determines whether the panic value is
	// included in the response detail field (development only).
	IncludeDetailInResponse bool
}

// RecoveryMiddleware converts panics into the gateway's 500 error shape.
func RecoveryMiddleware(config RecoveryConfig) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)

		if config.PrintStack {
			fmt.Printf("[PANIC RECOVERY] Request ID: %s\nPanic: %v\nStack:\n%s\n",
				requestID, recovered, debug.Stack())
		}

		body := gin.H{"message": "Errore interno del server"}
		if config.IncludeDetailInResponse {
			body["detail"] = fmt.Sprintf("panic: %v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// DefaultRecoveryMiddleware returns a recovery middleware with production
// defaults.
func DefaultRecoveryMiddleware() gin.HandlerFunc {
	return RecoveryMiddleware(RecoveryConfig{PrintStack: true})
}

// DevelopmentRecoveryMiddleware includes the panic value in responses.
func DevelopmentRecoveryMiddleware() gin.HandlerFunc {
	return RecoveryMiddleware(RecoveryConfig{
		PrintStack:              true,
		IncludeDetailInResponse: true,
	})
}
