// Package main starts an HTTP server that provides endpoints for health checks,
// build report analysis, and snapshot comparison. It uses the internal handlers
// package to process incoming requests and return JSON responses.
package main

import (
	"log"
	"net/http"

	"github.com/bundlescope/core/cmd/api/middleware"
	"github.com/bundlescope/core/internal/handlers"
)

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/analyze", handlers.AnalyzeHandler)
	mux.HandleFunc("/compare", handlers.CompareHandler)

	log.Printf("🚀 Server starting on 8080")
	log.Fatal(http.ListenAndServe(":8080", middleware.Cors(mux)))
}
