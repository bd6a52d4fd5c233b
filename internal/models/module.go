// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

// Sentinel package names. Application code aggregates under PackageFirstParty,
// bundler-injected glue under PackageVendorRuntime; everything else is a
// library name.
const (
	PackageFirstParty    = "first-party"
	PackageVendorRuntime = "vendor-runtime"
)

// ModuleKind classifies where a module's code came from.
type ModuleKind string

const (
	KindFirstParty    ModuleKind = "first-party"
	KindLibrary       ModuleKind = "library"
	KindVendorRuntime ModuleKind = "vendor-runtime"
)

// Module is one source-level compilation unit tracked individually before
// being combined into output bundles.
type Module struct {
	ID            string     `json:"id"`
	SizeBytes     int64      `json:"size_bytes"`
	Imports       []string   `json:"imports,omitempty"`
	ImportedBy    []string   `json:"imported_by,omitempty"`
	Package       string     `json:"package,omitempty"`
	Kind          ModuleKind `json:"kind,omitempty"`
	TreeShakeable *bool      `json:"tree_shakeable,omitempty"`
}

// IsTreeShakeable reports whether the module is tree-shakeable.
// Unknown defaults to true.
func (m Module) IsTreeShakeable() bool {
	return m.TreeShakeable == nil || *m.TreeShakeable
}

// RebuildImportedBy recomputes every module's ImportedBy list as the exact
// inverse of all Imports edges. ImportedBy is derived state, never a second
// source of truth, so callers that add or mutate modules must rebuild it
// before handing the set to the graph builder.
func RebuildImportedBy(modules []Module) {
	inverse := make(map[string][]string, len(modules))
	for _, m := range modules {
		for _, imp := range m.Imports {
			inverse[imp] = append(inverse[imp], m.ID)
		}
	}
	for i := range modules {
		modules[i].ImportedBy = inverse[modules[i].ID]
	}
}
