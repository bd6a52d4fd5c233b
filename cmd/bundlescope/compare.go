// Package main implements the bundlescope command line tool. It analyzes raw
// build reports into snapshots and compares snapshots against a baseline,
// printing human-readable summaries and optionally writing JSON output.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bundlescope/core/internal/diff"
	"github.com/bundlescope/core/internal/models"
)

var compareLabel string

var compareCmd = &cobra.Command{
	Use:   "compare [current.json] [baseline.json]",
	Short: "Diff a snapshot against a baseline snapshot",
	Long: `Compare reads snapshots produced by "bundlescope analyze -o" and prints
the size delta per bundle plus generated insights. With only a current
snapshot the run is reported as having no baseline.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareLabel, "label", "", "label to attach to the comparison")
}

func runCompare(cmd *cobra.Command, args []string) error {
	current, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}

	var baseline *models.Snapshot
	if len(args) == 2 {
		baseline, err = loadSnapshot(args[1])
		if err != nil {
			return err
		}
	}

	comparison := diff.Compare(current, baseline, compareLabel, thresholds)

	out := cmd.OutOrStdout()
	if comparison.NoBaseline {
		fmt.Fprintln(out, "No baseline snapshot; nothing to diff.")
	} else {
		fmt.Fprintf(out, "Total size: %s (%s, %+.1f%%)\n",
			humanize.Bytes(uint64(comparison.TotalSize.Current)),
			formatDelta(comparison.TotalSize.Diff),
			comparison.TotalSize.DiffPercent)

		for _, b := range comparison.Bundles {
			if b.Status == models.ChangeUnchanged {
				continue
			}
			fmt.Fprintf(out, "  %-10s %-30s %s (%+.1f%%)\n",
				b.Status, b.Name, formatDelta(b.Diff), b.DiffPercent)
		}
	}

	for _, insight := range comparison.Insights {
		fmt.Fprintf(out, "[%s] %s\n", insight.Severity, insight.Message)
	}

	return writeResult(comparison)
}

func loadSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &snapshot, nil
}

func formatDelta(diff int64) string {
	if diff < 0 {
		return "-" + humanize.Bytes(uint64(-diff))
	}
	return "+" + humanize.Bytes(uint64(diff))
}
