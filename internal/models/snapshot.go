// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

import "time"

// Snapshot is the complete, immutable metrics record of one build.
// Optional sections are omitted when the input that feeds them was absent;
// their absence degrades features, never the snapshot itself.
type Snapshot struct {
	Timestamp       time.Time            `json:"timestamp"`
	Commit          string               `json:"commit,omitempty"`
	Branch          string               `json:"branch,omitempty"`
	BuildDurationMS int64                `json:"build_duration_ms,omitempty"`
	Bundles         []Bundle             `json:"bundles"`
	TotalSizeBytes  int64                `json:"total_size_bytes"`
	CompressedTotal map[string]int64     `json:"compressed_totals,omitempty"`
	SizeByKind      map[BundleKind]int64 `json:"size_by_kind,omitempty"`

	Modules      []Module            `json:"modules,omitempty"`
	Packages     []PackageStats      `json:"packages,omitempty"`
	Graph        *DependencyGraph    `json:"graph,omitempty"`
	Attributions []SourceAttribution `json:"attributions,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// BundleByName returns the bundle with the given name, or nil.
func (s *Snapshot) BundleByName(name string) *Bundle {
	for i := range s.Bundles {
		if s.Bundles[i].Name == name {
			return &s.Bundles[i]
		}
	}
	return nil
}
