package classroom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

func TestClientErrorMapping(t *testing.T) {
	t.Run("404 is a not found error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error":{"message":"Requested entity was not found.","status":"NOT_FOUND"}}`)
		}))
		defer server.Close()

		client := NewClient("tok", WithBaseURL(server.URL))
		_, err := client.GetCourse(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("non 2xx carries status and upstream message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, `{"error":{"message":"Quota exceeded.","status":"RESOURCE_EXHAUSTED"}}`)
		}))
		defer server.Close()

		client := NewClient("tok", WithBaseURL(server.URL))
		_, err := client.ListCourses(context.Background())
		require.Error(t, err)

		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, domain.UpstreamError, derr.Type)
		assert.Equal(t, 429, derr.Details["upstream_status"])
		assert.Contains(t, derr.Message, "Quota exceeded.")
	})

	t.Run("unparseable error body falls back to status line", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer server.Close()

		client := NewClient("tok", WithBaseURL(server.URL))
		_, err := client.ListCourses(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable host is an upstream error", func(t *testing.T) {
		client := NewClient("tok", WithBaseURL("http://127.0.0.1:1"))
		_, err := client.ListCourses(context.Background())
		require.Error(t, err)

		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, domain.UpstreamError, derr.Type)
		assert.Equal(t, "UPSTREAM_UNREACHABLE", derr.Code)
	})

	t.Run("malformed success body is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"courses": [`)
		}))
		defer server.Close()

		client := NewClient("tok", WithBaseURL(server.URL))
		_, err := client.ListCourses(context.Background())
		require.Error(t, err)

		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "UPSTREAM_DECODE", derr.Code)
	})
}

func TestClientRequestShape(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		writeJSON(w, http.StatusOK, `{}`)
	}))
	defer server.Close()

	client := NewClient("tok", WithBaseURL(server.URL), WithPageSize(25))
	_, err := client.ListCourses(context.Background())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "Bearer tok", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Accept"))
	assert.Equal(t, "25", captured.URL.Query().Get("pageSize"))
	assert.Equal(t, "ACTIVE", captured.URL.Query().Get("courseStates"))
}

func TestClientEscapesCourseID(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `{"id":"x"}`)
	}))
	defer server.Close()

	client := NewClient("tok", WithBaseURL(server.URL))
	_, err := client.GetCourse(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/courses/a%2Fb", path)
}
