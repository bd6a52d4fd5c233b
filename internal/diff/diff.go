// Package diff computes the delta between two build snapshots: aggregate
// size changes, per-bundle classification, and generated insights.
package diff

import (
	"math"
	"sort"

	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/models"
)

// Compare classifies every bundle appearing in either snapshot and computes
// the aggregate deltas. A nil baseline is the expected first-run case and
// yields a Comparison marked NoBaseline instead of an error.
func Compare(current, baseline *models.Snapshot, label string, th config.Thresholds) *models.Comparison {
	c := &models.Comparison{Label: label}

	if baseline == nil {
		c.NoBaseline = true
		c.Insights = []models.Insight{{
			Severity: models.SeverityInfo,
			Message:  "no baseline snapshot available; this looks like a first run",
		}}
		return c
	}

	c.TotalSize = sizeChange(current.TotalSizeBytes, baseline.TotalSizeBytes)
	c.BuildDuration = sizeChange(current.BuildDurationMS, baseline.BuildDurationMS)
	c.CompressedTotals = compressedChanges(current.CompressedTotal, baseline.CompressedTotal)
	c.Bundles = bundleChanges(current.Bundles, baseline.Bundles, th)
	c.Insights = buildInsights(c, th)

	return c
}

// sizeChange computes diff and diffPercent. A zero previous value returns
// 0%, never Inf or NaN.
func sizeChange(current, previous int64) models.SizeChange {
	change := models.SizeChange{
		Current:  current,
		Previous: previous,
		Diff:     current - previous,
	}
	if previous != 0 {
		change.DiffPercent = float64(change.Diff) / float64(previous) * 100
	}
	return change
}

// compressedChanges computes a delta per compression algorithm across the
// union of both snapshots' algorithm sets.
func compressedChanges(current, baseline map[string]int64) map[string]models.SizeChange {
	if len(current) == 0 && len(baseline) == 0 {
		return nil
	}

	changes := make(map[string]models.SizeChange, len(current))
	for algo, size := range current {
		changes[algo] = sizeChange(size, baseline[algo])
	}
	for algo, size := range baseline {
		if _, ok := changes[algo]; !ok {
			changes[algo] = sizeChange(0, size)
		}
	}
	return changes
}

// bundleChanges classifies every bundle name appearing in either snapshot
// exactly once. Bundles only in current are added at a fixed +100%, only in
// baseline removed at -100%; there is no baseline (or current) size to
// divide by, so the percent is pinned by policy. Records are ordered largest
// absolute diff first; ties keep encounter order (current bundles in input
// order, then removed ones in baseline order).
func bundleChanges(current, baseline []models.Bundle, th config.Thresholds) []models.BundleChange {
	previous := make(map[string]*models.Bundle, len(baseline))
	for i := range baseline {
		previous[baseline[i].Name] = &baseline[i]
	}
	seen := make(map[string]bool, len(current))

	changes := make([]models.BundleChange, 0, len(current)+len(baseline))
	for i := range current {
		b := &current[i]
		seen[b.Name] = true

		prev, existed := previous[b.Name]
		if !existed {
			changes = append(changes, models.BundleChange{
				Name:        b.Name,
				Status:      models.ChangeAdded,
				Current:     b.SizeBytes,
				Diff:        b.SizeBytes,
				DiffPercent: 100,
			})
			continue
		}

		sc := sizeChange(b.SizeBytes, prev.SizeBytes)
		status := models.ChangeChanged
		if math.Abs(sc.DiffPercent) < th.UnchangedPercent {
			status = models.ChangeUnchanged
		}
		changes = append(changes, models.BundleChange{
			Name:        b.Name,
			Status:      status,
			Current:     sc.Current,
			Previous:    sc.Previous,
			Diff:        sc.Diff,
			DiffPercent: sc.DiffPercent,
		})
	}

	for i := range baseline {
		b := &baseline[i]
		if seen[b.Name] {
			continue
		}
		changes = append(changes, models.BundleChange{
			Name:        b.Name,
			Status:      models.ChangeRemoved,
			Previous:    b.SizeBytes,
			Diff:        -b.SizeBytes,
			DiffPercent: -100,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return abs64(changes[i].Diff) > abs64(changes[j].Diff)
	})

	return changes
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
