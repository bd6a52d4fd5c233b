// Package aggregate rolls per-module and per-file metrics up into per-package
// totals, percentages, and flags.
package aggregate

import (
	"math"
	"sort"

	"github.com/bundlescope/core/internal/attribution"
	"github.com/bundlescope/core/internal/models"
)

type packageAccum struct {
	name          string
	totalSize     int64
	moduleCount   int
	bundles       map[string]bool
	treeShakeable bool
	// module bytes per bundle, for allocating compressed sizes
	bundleBytes map[string]int64
}

// Packages groups modules by package name, summing sizes, counting modules,
// and unioning bundle membership. PercentOfTotal is computed against the sum
// of bundle sizes, never the sum of package totals. A package is
// tree-shakeable only if every member module is. Duplicate findings are
// copied from the graph when one was built; with no graph the flag is false,
// not unknown.
func Packages(modules []models.Module, bundles []models.Bundle, g *models.DependencyGraph) []models.PackageStats {
	memberOf := make(map[string][]string)
	for _, b := range bundles {
		for _, id := range b.ModuleIDs {
			memberOf[id] = append(memberOf[id], b.Name)
		}
	}

	accums := make(map[string]*packageAccum)
	var order []string
	for i := range modules {
		m := &modules[i]
		name := m.Package
		if name == "" {
			name, _ = attribution.ClassifyPath(m.ID)
		}

		acc := accums[name]
		if acc == nil {
			acc = &packageAccum{
				name:          name,
				bundles:       make(map[string]bool),
				bundleBytes:   make(map[string]int64),
				treeShakeable: true,
			}
			accums[name] = acc
			order = append(order, name)
		}

		acc.totalSize += m.SizeBytes
		acc.moduleCount++
		acc.treeShakeable = acc.treeShakeable && m.IsTreeShakeable()
		for _, bundleName := range memberOf[m.ID] {
			acc.bundles[bundleName] = true
			acc.bundleBytes[bundleName] += m.SizeBytes
		}
	}

	return finalize(accums, order, bundles, g)
}

// PackagesFromAttribution aggregates source attributions instead, for builds
// that reported no module list. Tree-shakeability is unknown at this
// granularity and defaults to true; duplicates require a graph and stay false.
func PackagesFromAttribution(attrs []models.SourceAttribution, bundles []models.Bundle) []models.PackageStats {
	accums := make(map[string]*packageAccum)
	var order []string
	for i := range attrs {
		a := &attrs[i]

		acc := accums[a.Package]
		if acc == nil {
			acc = &packageAccum{
				name:          a.Package,
				bundles:       make(map[string]bool),
				bundleBytes:   make(map[string]int64),
				treeShakeable: true,
			}
			accums[a.Package] = acc
			order = append(order, a.Package)
		}

		acc.totalSize += a.EstimatedSizeBytes
		acc.moduleCount++
		for _, bundleName := range a.Bundles {
			acc.bundles[bundleName] = true
			acc.bundleBytes[bundleName] += a.EstimatedSizeBytes
		}
	}

	return finalize(accums, order, bundles, nil)
}

func finalize(accums map[string]*packageAccum, order []string, bundles []models.Bundle, g *models.DependencyGraph) []models.PackageStats {
	var totalBundleBytes int64
	bundleByName := make(map[string]*models.Bundle, len(bundles))
	perBundleModuleBytes := make(map[string]int64)
	for i := range bundles {
		totalBundleBytes += bundles[i].SizeBytes
		bundleByName[bundles[i].Name] = &bundles[i]
	}
	for _, acc := range accums {
		for name, bytes := range acc.bundleBytes {
			perBundleModuleBytes[name] += bytes
		}
	}

	stats := make([]models.PackageStats, 0, len(order))
	for _, name := range order {
		acc := accums[name]

		ps := models.PackageStats{
			Name:           name,
			TotalSizeBytes: acc.totalSize,
			ModuleCount:    acc.moduleCount,
			TreeShakeable:  acc.treeShakeable,
		}

		for bundleName := range acc.bundles {
			ps.Bundles = append(ps.Bundles, bundleName)
		}
		sort.Strings(ps.Bundles)

		ps.CompressedSizes = allocateCompressed(acc, bundleByName, perBundleModuleBytes)

		if dup := g.DuplicateByName(name); dup != nil {
			ps.Duplicate = true
			ps.Versions = dup.Versions
		}

		if totalBundleBytes > 0 {
			ps.PercentOfTotal = float64(acc.totalSize) / float64(totalBundleBytes) * 100
		}

		stats = append(stats, ps)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalSizeBytes != stats[j].TotalSizeBytes {
			return stats[i].TotalSizeBytes > stats[j].TotalSizeBytes
		}
		return stats[i].Name < stats[j].Name
	})

	return stats
}

// allocateCompressed estimates a package's compressed totals by giving it a
// share of each bundle's compressed sizes proportional to the package's share
// of that bundle's module bytes. Like attribution, an estimate: modules carry
// no compressed size of their own.
func allocateCompressed(acc *packageAccum, bundleByName map[string]*models.Bundle, perBundleModuleBytes map[string]int64) map[string]int64 {
	var out map[string]int64
	for bundleName, pkgBytes := range acc.bundleBytes {
		bundle := bundleByName[bundleName]
		if bundle == nil || len(bundle.CompressedSizes) == 0 {
			continue
		}
		bundleModuleBytes := perBundleModuleBytes[bundleName]
		if bundleModuleBytes == 0 {
			continue
		}
		share := float64(pkgBytes) / float64(bundleModuleBytes)
		for algo, size := range bundle.CompressedSizes {
			if out == nil {
				out = make(map[string]int64)
			}
			out[algo] += int64(math.Round(float64(size) * share))
		}
	}
	return out
}
