// Package testutil provides testing utilities and helpers.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// NewTestRouter creates a Gin router in test mode.
func NewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// HTTPTestHelper provides utilities for HTTP handler testing.
type HTTPTestHelper struct {
	router *gin.Engine
	t      *testing.T
}

// NewHTTPTestHelper creates an HTTP test helper around a router.
func NewHTTPTestHelper(t *testing.T, router *gin.Engine) *HTTPTestHelper {
	return &HTTPTestHelper{router: router, t: t}
}

// Request performs an HTTP request against the router and returns the
// recorded response.
func (h *HTTPTestHelper) Request(method, url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	h.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			h.t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		h.t.Fatalf("Failed to create request: %v", err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, req)
	return recorder
}

// AssertStatus fails the test when the recorded status differs.
func (h *HTTPTestHelper) AssertStatus(recorder *httptest.ResponseRecorder, expected int) {
	h.t.Helper()
	if recorder.Code != expected {
		h.t.Errorf("Expected status %d, got %d. Body: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// DecodeJSON decodes the recorded body into dest.
func (h *HTTPTestHelper) DecodeJSON(recorder *httptest.ResponseRecorder, dest interface{}) {
	h.t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dest); err != nil {
		h.t.Fatalf("Failed to decode response body: %v. Body: %s", err, recorder.Body.String())
	}
}
