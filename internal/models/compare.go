// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

// ChangeStatus classifies one bundle's change between two snapshots.
type ChangeStatus string

const (
	ChangeAdded     ChangeStatus = "added"
	ChangeRemoved   ChangeStatus = "removed"
	ChangeChanged   ChangeStatus = "changed"
	ChangeUnchanged ChangeStatus = "unchanged"
)

// SizeChange is one aggregate delta between two snapshots.
// DiffPercent is 0 when Previous is 0; a zero baseline is a defined edge
// case, never Inf or NaN.
type SizeChange struct {
	Current     int64   `json:"current"`
	Previous    int64   `json:"previous"`
	Diff        int64   `json:"diff"`
	DiffPercent float64 `json:"diff_percent"`
}

// BundleChange is the per-bundle delta record.
type BundleChange struct {
	Name        string       `json:"name"`
	Status      ChangeStatus `json:"status"`
	Current     int64        `json:"current"`
	Previous    int64        `json:"previous"`
	Diff        int64        `json:"diff"`
	DiffPercent float64      `json:"diff_percent"`
}

// Insight is one generated textual observation about a comparison.
type Insight struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Comparison is the computed delta between two snapshots. It is derived from
// exactly one current and one baseline snapshot and never mutated after
// creation. NoBaseline marks a first run: no baseline existed, so no deltas
// were computed.
type Comparison struct {
	Label            string                `json:"label,omitempty"`
	NoBaseline       bool                  `json:"no_baseline,omitempty"`
	TotalSize        SizeChange            `json:"total_size"`
	CompressedTotals map[string]SizeChange `json:"compressed_totals,omitempty"`
	BuildDuration    SizeChange            `json:"build_duration"`
	Bundles          []BundleChange        `json:"bundles,omitempty"`
	Insights         []Insight             `json:"insights,omitempty"`
}
