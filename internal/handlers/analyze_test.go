// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlescope/core/internal/models"
)

const validReport = `{
	"commit": "abc123",
	"branch": "main",
	"bundles": [
		{"name": "main.js", "size_bytes": 1000, "kind": "code", "module_ids": ["src/index.js", "node_modules/lodash/map.js"]},
		{"name": "styles.css", "size_bytes": 300, "kind": "style"}
	],
	"modules": [
		{"id": "src/index.js", "size_bytes": 400, "imports": ["node_modules/lodash/map.js"]},
		{"id": "node_modules/lodash/map.js", "size_bytes": 500}
	]
}`

func TestAnalyzeHandler(t *testing.T) {
	t.Run("returns 200 OK for valid build report", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(validReport))
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("returns a snapshot with totals and packages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(validReport))
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		var snapshot models.Snapshot
		err := json.NewDecoder(w.Body).Decode(&snapshot)
		require.NoError(t, err)

		assert.Equal(t, int64(1300), snapshot.TotalSizeBytes)
		assert.Equal(t, "abc123", snapshot.Commit)
		require.NotNil(t, snapshot.Graph)
		require.Len(t, snapshot.Packages, 2)
		assert.Equal(t, "lodash", snapshot.Packages[0].Name)
	})

	t.Run("returns 405 for GET request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "Method not allowed")
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{invalid json}`))
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid build report")
	})

	t.Run("returns 400 for a report with no bundles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"bundles": []}`))
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pretty query indents the response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze?pretty=true", strings.NewReader(validReport))
		w := httptest.NewRecorder()

		AnalyzeHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "\n  ")
	})

	t.Run("handles concurrent requests", func(t *testing.T) {
		numRequests := 10
		results := make(chan int, numRequests)

		for i := 0; i < numRequests; i++ {
			go func() {
				req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(validReport))
				w := httptest.NewRecorder()
				AnalyzeHandler(w, req)
				results <- w.Code
			}()
		}

		for i := 0; i < numRequests; i++ {
			code := <-results
			assert.Equal(t, http.StatusOK, code)
		}
	})
}
