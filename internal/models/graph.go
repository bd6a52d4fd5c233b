// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

// ImportReason records why a module is part of the graph.
type ImportReason string

const (
	ReasonEntry        ImportReason = "entry"
	ReasonStaticImport ImportReason = "static-import"
)

// CycleImpact grades how severe a detected import cycle is.
type CycleImpact string

const (
	CycleWarning CycleImpact = "warning"
	CycleError   CycleImpact = "error"
)

// GraphNode is the dependency-graph view of one module.
type GraphNode struct {
	ID            string       `json:"id"`
	Depth         int          `json:"depth"`
	Reason        ImportReason `json:"reason"`
	Circular      bool         `json:"circular,omitempty"`
	CircularChain []string     `json:"circular_chain,omitempty"`
}

// Cycle is one detected import cycle. Chain lists the member module ids in
// traversal order; the same cycle found from different starting points is
// reported once.
type Cycle struct {
	Chain  []string    `json:"chain"`
	Impact CycleImpact `json:"impact"`
}

// PackageVersion is one distinct version of a package found in the module set.
type PackageVersion struct {
	Version   string   `json:"version"`
	SizeBytes int64    `json:"size_bytes"`
	ModuleIDs []string `json:"module_ids"`
}

// DuplicatePackage records a package present at more than one version.
// Two versions with identical sizes are still two versions; duplication is
// about version plurality, not size difference.
type DuplicatePackage struct {
	Name           string           `json:"name"`
	TotalSizeBytes int64            `json:"total_size_bytes"`
	Versions       []PackageVersion `json:"versions"`
}

// DependencyGraph holds one node per module plus the derived findings.
// DanglingEdges counts imports that name a module absent from the set;
// such edges are ignored for depth and cycle purposes but surfaced here so
// callers can detect data-quality problems upstream.
type DependencyGraph struct {
	Nodes         map[string]*GraphNode `json:"nodes"`
	Cycles        []Cycle               `json:"cycles,omitempty"`
	Duplicates    []DuplicatePackage    `json:"duplicates,omitempty"`
	DanglingEdges int                   `json:"dangling_edges,omitempty"`
}

// DuplicateNames returns the package names flagged as duplicated, keyed for
// lookup. Safe to call on a nil graph.
func (g *DependencyGraph) DuplicateNames() map[string]bool {
	if g == nil {
		return nil
	}
	names := make(map[string]bool, len(g.Duplicates))
	for _, d := range g.Duplicates {
		names[d.Name] = true
	}
	return names
}

// DuplicateByName returns the duplicate entry for a package name, or nil.
// Safe to call on a nil graph.
func (g *DependencyGraph) DuplicateByName(name string) *DuplicatePackage {
	if g == nil {
		return nil
	}
	for i := range g.Duplicates {
		if g.Duplicates[i].Name == name {
			return &g.Duplicates[i]
		}
	}
	return nil
}
