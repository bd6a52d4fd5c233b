// Package diff computes the delta between two build snapshots: aggregate
// size changes, per-bundle classification, and generated insights.
package diff

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/models"
)

// buildInsights turns a computed comparison into textual observations.
// Presentation rules only; the numbers in the Comparison stay authoritative
// and reusable by any renderer.
func buildInsights(c *models.Comparison, th config.Thresholds) []models.Insight {
	var insights []models.Insight

	switch {
	case c.TotalSize.DiffPercent > th.GrowthWarnPercent:
		insights = append(insights, models.Insight{
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("total size grew %.1f%% (%s → %s)",
				c.TotalSize.DiffPercent,
				humanize.Bytes(uint64(c.TotalSize.Previous)),
				humanize.Bytes(uint64(c.TotalSize.Current))),
		})
	case c.TotalSize.DiffPercent < -th.GrowthWarnPercent:
		insights = append(insights, models.Insight{
			Severity: models.SeverityPositive,
			Message: fmt.Sprintf("total size shrank %.1f%% (%s → %s)",
				-c.TotalSize.DiffPercent,
				humanize.Bytes(uint64(c.TotalSize.Previous)),
				humanize.Bytes(uint64(c.TotalSize.Current))),
		})
	}

	if callout := largestIncrease(c.Bundles); callout != nil && callout.Diff > th.CalloutBytes {
		insights = append(insights, models.Insight{
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%s grew by %s, the largest single increase",
				callout.Name, humanize.Bytes(uint64(callout.Diff))),
		})
	}

	if added := namesWithStatus(c.Bundles, models.ChangeAdded); len(added) > 0 {
		insights = append(insights, models.Insight{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("%d bundle(s) added: %s", len(added), strings.Join(added, ", ")),
		})
	}
	if removed := namesWithStatus(c.Bundles, models.ChangeRemoved); len(removed) > 0 {
		insights = append(insights, models.Insight{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("%d bundle(s) removed: %s", len(removed), strings.Join(removed, ", ")),
		})
	}

	return insights
}

// largestIncrease returns the changed bundle with the biggest positive diff.
// The records are already sorted by absolute diff, so the first positive
// changed entry wins.
func largestIncrease(changes []models.BundleChange) *models.BundleChange {
	for i := range changes {
		if changes[i].Status == models.ChangeChanged && changes[i].Diff > 0 {
			return &changes[i]
		}
	}
	return nil
}

func namesWithStatus(changes []models.BundleChange, status models.ChangeStatus) []string {
	var names []string
	for i := range changes {
		if changes[i].Status == status {
			names = append(names, changes[i].Name)
		}
	}
	return names
}
