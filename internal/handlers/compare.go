// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/diff"
	"github.com/bundlescope/core/internal/models"
)

// CompareRequest carries the two snapshots to diff. Baseline may be null on
// a first run; the response then carries a no-baseline comparison.
type CompareRequest struct {
	Current  *models.Snapshot `json:"current"`
	Baseline *models.Snapshot `json:"baseline,omitempty"`
	Label    string           `json:"label,omitempty"`
}

// CompareHandler diffs two snapshots and responds with the comparison.
func CompareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()

	var req CompareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid compare request: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Current == nil {
		http.Error(w, "Invalid compare request: missing current snapshot", http.StatusBadRequest)
		return
	}

	comparison := diff.Compare(req.Current, req.Baseline, req.Label, config.Default())

	writeJSON(w, r, comparison)
}
