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

	"github.com/bundlescope/core/internal/analyze"
	"github.com/bundlescope/core/internal/models"
	"github.com/bundlescope/core/internal/rules"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [report.json]",
	Short: "Turn a raw build report into a size snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var report models.RawBuildReport
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("parse report %s: %w", args[0], err)
	}

	snapshot, err := analyze.BuildSnapshot(cmd.Context(), &report, analyze.Options{
		Thresholds: thresholds,
	})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total size: %s across %d bundle(s)\n",
		humanize.Bytes(uint64(snapshot.TotalSizeBytes)), len(snapshot.Bundles))

	for algo, size := range snapshot.CompressedTotal {
		fmt.Fprintf(out, "  %s: %s\n", algo, humanize.Bytes(uint64(size)))
	}

	for i := range snapshot.Bundles {
		b := &snapshot.Bundles[i]
		fmt.Fprintf(out, "  %-30s %10s  %s\n", b.Name, humanize.Bytes(uint64(b.SizeBytes)), b.Kind)
	}

	if snapshot.Graph != nil {
		if n := len(snapshot.Graph.Cycles); n > 0 {
			fmt.Fprintf(out, "Import cycles: %d\n", n)
		}
		if n := len(snapshot.Graph.Duplicates); n > 0 {
			fmt.Fprintf(out, "Duplicated packages: %d\n", n)
		}
	}

	for _, w := range snapshot.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}

	recs := rules.Evaluate(snapshot.Packages, snapshot.Graph, thresholds)
	if len(recs) > 0 {
		fmt.Fprintln(out, "Recommendations:")
		for _, rec := range recs {
			fmt.Fprintf(out, "  [%s] %s: %s\n", rec.Severity, rec.Kind, rec.Message)
		}
	}

	return writeResult(snapshot)
}

// writeResult writes v as JSON to --output, or does nothing when the flag is
// unset.
func writeResult(v any) error {
	if outPath == "" {
		return nil
	}

	var (
		data []byte
		err  error
	)
	if prettyJSON {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
