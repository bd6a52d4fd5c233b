// Package main implements the bundlescope command line tool. It analyzes raw
// build reports into snapshots and compares snapshots against a baseline,
// printing human-readable summaries and optionally writing JSON output.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/bundlescope/core/internal/config"
)

var (
	cfgPath    string
	outPath    string
	prettyJSON bool

	thresholds = config.Default()

	rootCmd = &cobra.Command{
		Use:   "bundlescope",
		Short: "Analyze and compare JavaScript build artifacts",
		Long: `Bundlescope turns bundler build reports into size snapshots:
dependency graph, package aggregation, source attribution, and
snapshot-to-snapshot diffs with actionable recommendations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			th, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			thresholds = th
			return nil
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "bundlescope.yaml", "path to the thresholds config file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "write the result as JSON to this file")
	rootCmd.PersistentFlags().BoolVar(&prettyJSON, "pretty", false, "indent JSON output")

	rootCmd.AddCommand(analyzeCmd, compareCmd)
}
