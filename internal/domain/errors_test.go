package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewNotFoundError("COURSE_NOT_FOUND", "course 42 not found")
		assert.Equal(t, "COURSE_NOT_FOUND: course 42 not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewAuthError("TOKEN_EXCHANGE_FAILED", "could not exchange refresh token", cause)
		assert.Contains(t, err.Error(), "TOKEN_EXCHANGE_FAILED")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("PANIC", "unexpected failure", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Nil(t, errors.Unwrap(NewNotFoundError("X", "y")))
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected ErrorType
	}{
		{"config", NewConfigError("C", "m", nil), ConfigError},
		{"auth", NewAuthError("A", "m", nil), AuthError},
		{"not found", NewNotFoundError("N", "m"), NotFoundError},
		{"upstream", NewUpstreamError("U", "m", 502, nil), UpstreamError},
		{"validation", NewValidationError("V", "m", nil), ValidationError},
		{"internal", NewInternalError("I", "m", nil), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Type)
			assert.Equal(t, tt.expected, TypeOf(tt.err))
		})
	}
}

func TestUpstreamErrorStatus(t *testing.T) {
	t.Run("status recorded in details", func(t *testing.T) {
		err := NewUpstreamError("UPSTREAM_STATUS", "bad gateway", 502, nil)
		require.NotNil(t, err.Details)
		assert.Equal(t, 502, err.Details["upstream_status"])
	})

	t.Run("zero status omits details", func(t *testing.T) {
		err := NewUpstreamError("UPSTREAM_UNREACHABLE", "no route", 0, nil)
		assert.Nil(t, err.Details)
	})
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("N", "m")))
	assert.False(t, IsNotFound(NewUpstreamError("U", "m", 500, nil)))

	assert.True(t, IsConfig(NewConfigError("C", "m", nil)))
	assert.False(t, IsConfig(NewAuthError("A", "m", nil)))

	assert.True(t, IsAuth(NewAuthError("A", "m", nil)))
	assert.False(t, IsAuth(NewConfigError("C", "m", nil)))
}

func TestTypeOfUnclassified(t *testing.T) {
	assert.Equal(t, InternalError, TypeOf(errors.New("plain")))
}
