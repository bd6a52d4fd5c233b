// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

import (
	"encoding/json"
	"time"
)

// BundleInput describes one emitted file as reported by the build pipeline.
//
// Content and SourceMap are only useful together: the slow attribution path
// samples the compiled text against the map. One without the other disables
// attribution for that bundle.
type BundleInput struct {
	Name            string           `json:"name"`
	SizeBytes       int64            `json:"size_bytes"`
	Kind            BundleKind       `json:"kind"`
	CompressedSizes map[string]int64 `json:"compressed_sizes,omitempty"`
	ModuleIDs       []string         `json:"module_ids,omitempty"`
	Content         string           `json:"content,omitempty"`
	SourceMap       json.RawMessage  `json:"source_map,omitempty"`
}

// RawBuildReport is the external input of one analysis run: everything the
// build pipeline knows about its own output. Modules are optional; their
// absence disables graph and aggregation features gracefully.
type RawBuildReport struct {
	Timestamp       time.Time     `json:"timestamp"`
	Commit          string        `json:"commit,omitempty"`
	Branch          string        `json:"branch,omitempty"`
	BuildDurationMS int64         `json:"build_duration_ms,omitempty"`
	Bundles         []BundleInput `json:"bundles"`
	Modules         []Module      `json:"modules,omitempty"`
}
