// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/bundlescope/core/internal/analyze"
	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/models"
)

// AnalyzeHandler accepts a raw build report and responds with the computed
// snapshot.
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
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

	var report models.RawBuildReport
	if err := json.Unmarshal(body, &report); err != nil {
		http.Error(w, "Invalid build report: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := analyze.BuildSnapshot(r.Context(), &report, analyze.Options{
		Thresholds: config.Default(),
	})
	if err != nil {
		http.Error(w, "Invalid build report: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, r, snapshot)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
