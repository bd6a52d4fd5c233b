// Package graph builds the dependency graph over a build's modules and
// derives structural findings: depth from entry nodes, import cycles, and
// duplicate package versions.
package graph

import (
	"sort"
	"strings"

	"github.com/bundlescope/core/internal/models"
)

// DefaultCycleErrorLength is the cycle chain length above which a cycle is
// graded error instead of warning. A policy constant, not a law of nature.
const DefaultCycleErrorLength = 5

// Options tunes the structural findings.
type Options struct {
	// CycleErrorLength overrides DefaultCycleErrorLength when positive.
	CycleErrorLength int
}

// Build constructs the dependency graph for one snapshot's module set.
// Imports naming a module absent from the set are counted as dangling edges
// and ignored for depth and cycle purposes. A self-import is reported as a
// 1-node cycle, not rejected.
func Build(modules []models.Module, opts Options) *models.DependencyGraph {
	errLen := opts.CycleErrorLength
	if errLen <= 0 {
		errLen = DefaultCycleErrorLength
	}

	byID := make(map[string]*models.Module, len(modules))
	for i := range modules {
		byID[modules[i].ID] = &modules[i]
	}

	g := &models.DependencyGraph{
		Nodes: make(map[string]*models.GraphNode, len(modules)),
	}

	var entries []string
	for i := range modules {
		m := &modules[i]
		node := &models.GraphNode{ID: m.ID, Reason: models.ReasonStaticImport}
		if len(m.ImportedBy) == 0 {
			node.Reason = models.ReasonEntry
			entries = append(entries, m.ID)
		}
		g.Nodes[m.ID] = node

		for _, imp := range m.Imports {
			if _, ok := byID[imp]; !ok {
				g.DanglingEdges++
			}
		}
	}

	assignDepths(g, byID, entries)
	g.Cycles = detectCycles(g, modules, byID, errLen)
	g.Duplicates = detectDuplicates(modules)

	return g
}

// assignDepths runs a breadth-first traversal seeded from all entry nodes at
// once, so every node takes the smallest depth at which any entry reaches it.
// A single shared distance map keeps this linear even on wide fan-out.
func assignDepths(g *models.DependencyGraph, byID map[string]*models.Module, entries []string) {
	depth := make(map[string]int, len(byID))
	queue := make([]string, 0, len(entries))

	for _, id := range entries {
		depth[id] = 0
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, imp := range byID[id].Imports {
			if _, ok := byID[imp]; !ok {
				continue
			}
			if _, seen := depth[imp]; seen {
				continue
			}
			depth[imp] = depth[id] + 1
			queue = append(queue, imp)
		}
	}

	for id, d := range depth {
		g.Nodes[id].Depth = d
	}
}

// detectCycles walks the import edges depth-first with an explicit recursion
// stack. Revisiting a node already on the stack closes a cycle: the chain is
// the stack slice from that node to the current one. The same cycle reached
// from different starting points collapses onto one canonical key.
func detectCycles(g *models.DependencyGraph, modules []models.Module, byID map[string]*models.Module, errLen int) []models.Cycle {
	const (
		white = iota // unvisited
		gray         // on the recursion stack
		black        // fully explored
	)

	state := make(map[string]int, len(byID))
	onStack := make(map[string]int, len(byID))
	stack := make([]string, 0, len(byID))
	reported := make(map[string]bool)
	var cycles []models.Cycle

	var visit func(id string)
	visit = func(id string) {
		state[id] = gray
		onStack[id] = len(stack)
		stack = append(stack, id)

		for _, imp := range byID[id].Imports {
			if _, ok := byID[imp]; !ok {
				continue
			}
			switch state[imp] {
			case white:
				visit(imp)
			case gray:
				chain := append([]string(nil), stack[onStack[imp]:]...)
				key := canonicalKey(chain)
				if reported[key] {
					continue
				}
				reported[key] = true

				impact := models.CycleWarning
				if len(chain) > errLen {
					impact = models.CycleError
				}
				cycles = append(cycles, models.Cycle{Chain: chain, Impact: impact})

				for _, member := range chain {
					node := g.Nodes[member]
					node.Circular = true
					if node.CircularChain == nil {
						node.CircularChain = chain
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, id)
		state[id] = black
	}

	for i := range modules {
		if state[modules[i].ID] == white {
			visit(modules[i].ID)
		}
	}

	return cycles
}

// canonicalKey identifies a cycle independently of where traversal entered it.
func canonicalKey(chain []string) string {
	ids := append([]string(nil), chain...)
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// detectDuplicates groups library modules by (package, version) and reports
// every package present at more than one distinct version. Two versions of
// identical size are still two versions.
func detectDuplicates(modules []models.Module) []models.DuplicatePackage {
	type group struct {
		size int64
		ids  []string
	}

	byPackage := make(map[string]map[string]*group)

	for i := range modules {
		m := &modules[i]
		name := m.Package
		if name == "" || name == models.PackageFirstParty || name == models.PackageVendorRuntime {
			continue
		}

		version := VersionFromID(m.ID)
		versions := byPackage[name]
		if versions == nil {
			versions = make(map[string]*group)
			byPackage[name] = versions
		}
		grp := versions[version]
		if grp == nil {
			grp = &group{}
			versions[version] = grp
		}
		grp.size += m.SizeBytes
		grp.ids = append(grp.ids, m.ID)
	}

	var duplicates []models.DuplicatePackage
	for name, versions := range byPackage {
		if len(versions) < 2 {
			continue
		}

		dup := models.DuplicatePackage{Name: name}
		for version, grp := range versions {
			dup.TotalSizeBytes += grp.size
			dup.Versions = append(dup.Versions, models.PackageVersion{
				Version:   version,
				SizeBytes: grp.size,
				ModuleIDs: grp.ids,
			})
		}
		sort.Slice(dup.Versions, func(i, j int) bool {
			if dup.Versions[i].SizeBytes != dup.Versions[j].SizeBytes {
				return dup.Versions[i].SizeBytes > dup.Versions[j].SizeBytes
			}
			return dup.Versions[i].Version < dup.Versions[j].Version
		})
		duplicates = append(duplicates, dup)
	}

	sort.Slice(duplicates, func(i, j int) bool {
		return duplicates[i].Name < duplicates[j].Name
	})

	return duplicates
}

// VersionFromID extracts the package version embedded in a module id under
// the staged-dependency layout, e.g.
//
//	node_modules/.pnpm/lodash@4.17.21/node_modules/lodash/index.js → 4.17.21
//
// Peer-dependency suffixes like "(react@18.2.0)" are stripped. Returns
// "unknown" when no version can be extracted.
func VersionFromID(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		if part != ".pnpm" || i+1 >= len(parts) {
			continue
		}
		staged := parts[i+1]
		if idx := strings.IndexByte(staged, '('); idx >= 0 {
			staged = staged[:idx]
		}
		if at := strings.LastIndexByte(staged, '@'); at > 0 {
			return staged[at+1:]
		}
	}
	return "unknown"
}
