// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

// BundleKind classifies an emitted output file.
type BundleKind string

const (
	BundleCode   BundleKind = "code"
	BundleStyle  BundleKind = "style"
	BundleAsset  BundleKind = "asset"
	BundleMarkup BundleKind = "markup"
	BundleOther  BundleKind = "other"
)

// Bundle is one emitted output file of a build.
//
// SizeBytes is the ground truth for the file. Sums over member modules are
// an estimate and may not equal it: shared runtime glue and dead-code
// elimination make the two diverge.
type Bundle struct {
	Name            string           `json:"name"`
	SizeBytes       int64            `json:"size_bytes"`
	CompressedSizes map[string]int64 `json:"compressed_sizes,omitempty"`
	Kind            BundleKind       `json:"kind"`
	ModuleIDs       []string         `json:"module_ids,omitempty"`
}
