// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

// PackageStats is the per-package rollup of module and attribution metrics.
//
// PercentOfTotal is computed against the sum of bundle sizes, never against
// the sum of package totals: the two may differ because of shared runtime
// glue and dead-code elimination.
type PackageStats struct {
	Name            string           `json:"name"`
	TotalSizeBytes  int64            `json:"total_size_bytes"`
	CompressedSizes map[string]int64 `json:"compressed_sizes,omitempty"`
	ModuleCount     int              `json:"module_count"`
	Bundles         []string         `json:"bundles,omitempty"`
	TreeShakeable   bool             `json:"tree_shakeable"`
	Duplicate       bool             `json:"duplicate"`
	Versions        []PackageVersion `json:"versions,omitempty"`
	PercentOfTotal  float64          `json:"percent_of_total"`
}

// SourceAttribution estimates how many bytes of compiled output originate
// from one original source file. LineCount counts distinct original lines
// touched by the compiled output, not total lines in the source file.
type SourceAttribution struct {
	SourcePath         string   `json:"source_path"`
	Package            string   `json:"package"`
	EstimatedSizeBytes int64    `json:"estimated_size_bytes"`
	LineCount          int      `json:"line_count"`
	Bundles            []string `json:"bundles,omitempty"`
}

// Severity grades a recommendation or insight.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityPositive Severity = "positive"
)

// Recommendation is one actionable finding from the rule engine.
type Recommendation struct {
	Kind             string   `json:"kind"`
	Severity         Severity `json:"severity"`
	Target           string   `json:"target"`
	Message          string   `json:"message"`
	PotentialSavings int64    `json:"potential_savings,omitempty"`
}
