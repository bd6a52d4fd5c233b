// Package rules evaluates stateless optimization rules over package stats
// and the dependency graph, producing recommendations in the order the
// conditions were checked. One recommendation per triggering condition, no
// further ordering guarantees.
package rules

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/models"
)

// Rule kinds emitted by Evaluate.
const (
	KindSplitPackage     = "split-package"
	KindDeduplicate      = "deduplicate"
	KindBreakImportCycle = "break-import-cycle"
)

// Evaluate is a pure function of its inputs. The graph may be nil, in which
// case only the size rules run.
func Evaluate(pkgs []models.PackageStats, g *models.DependencyGraph, th config.Thresholds) []models.Recommendation {
	var recs []models.Recommendation

	for i := range pkgs {
		if rec := checkPackageSize(&pkgs[i], th); rec != nil {
			recs = append(recs, *rec)
		}
	}

	if g != nil {
		for i := range g.Duplicates {
			recs = append(recs, deduplicate(&g.Duplicates[i]))
		}
		for i := range g.Cycles {
			recs = append(recs, breakCycle(&g.Cycles[i]))
		}
	}

	return recs
}

func checkPackageSize(pkg *models.PackageStats, th config.Thresholds) *models.Recommendation {
	if pkg.TotalSizeBytes <= th.PackageSplitBytes {
		return nil
	}

	severity := models.SeverityWarning
	if pkg.TotalSizeBytes > th.PackageCriticalBytes {
		severity = models.SeverityError
	}

	return &models.Recommendation{
		Kind:     KindSplitPackage,
		Severity: severity,
		Target:   pkg.Name,
		Message: fmt.Sprintf("%s contributes %s (%.1f%% of output); consider code splitting or lazy loading",
			pkg.Name, humanize.Bytes(uint64(pkg.TotalSizeBytes)), pkg.PercentOfTotal),
	}
}

// deduplicate assumes only the largest version needs to survive, so the
// potential savings are everything but that version. A policy estimate, not
// a guarantee.
func deduplicate(dup *models.DuplicatePackage) models.Recommendation {
	var largest int64
	for _, v := range dup.Versions {
		if v.SizeBytes > largest {
			largest = v.SizeBytes
		}
	}
	savings := dup.TotalSizeBytes - largest

	return models.Recommendation{
		Kind:     KindDeduplicate,
		Severity: models.SeverityWarning,
		Target:   dup.Name,
		Message: fmt.Sprintf("%s is bundled at %d versions; aligning them could save about %s",
			dup.Name, len(dup.Versions), humanize.Bytes(uint64(savings))),
		PotentialSavings: savings,
	}
}

func breakCycle(cycle *models.Cycle) models.Recommendation {
	severity := models.SeverityWarning
	if cycle.Impact == models.CycleError {
		severity = models.SeverityError
	}

	target := ""
	if len(cycle.Chain) > 0 {
		target = cycle.Chain[0]
	}

	return models.Recommendation{
		Kind:     KindBreakImportCycle,
		Severity: severity,
		Target:   target,
		Message:  fmt.Sprintf("import cycle across %d module(s); refactor to break it", len(cycle.Chain)),
	}
}
