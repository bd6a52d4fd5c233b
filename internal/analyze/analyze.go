// Package analyze orchestrates one batch analysis run: raw build metadata
// in, an immutable snapshot out. Per-bundle work has no data dependency
// across bundles, so it fans out concurrently; aggregation afterwards is
// commutative sums, so results do not depend on scheduling.
package analyze

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bundlescope/core/internal/aggregate"
	"github.com/bundlescope/core/internal/attribution"
	"github.com/bundlescope/core/internal/compress"
	"github.com/bundlescope/core/internal/config"
	"github.com/bundlescope/core/internal/graph"
	"github.com/bundlescope/core/internal/models"
)

// Options configures one analysis run.
type Options struct {
	Thresholds config.Thresholds

	// Parallelism bounds concurrent per-bundle work. Zero means NumCPU.
	Parallelism int
}

type bundleResult struct {
	bundle   models.Bundle
	attrs    []models.SourceAttribution
	warnings []string
}

// BuildSnapshot analyzes one build report. Malformed pieces of input degrade
// the feature they feed — a warning on the snapshot — and never abort the
// run. Cancellation is honored between bundles, not mid-bundle.
func BuildSnapshot(ctx context.Context, report *models.RawBuildReport, opts Options) (*models.Snapshot, error) {
	if report == nil {
		return nil, fmt.Errorf("nil build report")
	}
	if len(report.Bundles) == 0 {
		return nil, fmt.Errorf("build report has no bundles")
	}

	modules := normalizeModules(report.Modules)
	moduleByID := make(map[string]*models.Module, len(modules))
	for i := range modules {
		moduleByID[modules[i].ID] = &modules[i]
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]bundleResult, len(report.Bundles))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := range report.Bundles {
		if err := egCtx.Err(); err != nil {
			break
		}
		i := i
		eg.Go(func() error {
			results[i] = analyzeBundle(report.Bundles[i], moduleByID)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return assemble(report, modules, results, opts), nil
}

// normalizeModules fills in package and kind from the module id when the
// build tool did not report them, and recomputes the derived back-reference
// index so the graph builder sees a consistent edge set.
func normalizeModules(modules []models.Module) []models.Module {
	if len(modules) == 0 {
		return nil
	}

	normalized := make([]models.Module, len(modules))
	copy(normalized, modules)
	for i := range normalized {
		if normalized[i].Package == "" || normalized[i].Kind == "" {
			pkg, kind := attribution.ClassifyPath(normalized[i].ID)
			if normalized[i].Package == "" {
				normalized[i].Package = pkg
			}
			if normalized[i].Kind == "" {
				normalized[i].Kind = kind
			}
		}
		if normalized[i].SizeBytes < 0 {
			normalized[i].SizeBytes = 0
		}
	}
	models.RebuildImportedBy(normalized)
	return normalized
}

func analyzeBundle(in models.BundleInput, moduleByID map[string]*models.Module) bundleResult {
	var res bundleResult

	bundle := models.Bundle{
		Name:            in.Name,
		SizeBytes:       in.SizeBytes,
		CompressedSizes: in.CompressedSizes,
		Kind:            in.Kind,
		ModuleIDs:       in.ModuleIDs,
	}
	if bundle.Kind == "" {
		bundle.Kind = models.BundleOther
	}
	if bundle.SizeBytes < 0 {
		bundle.SizeBytes = 0
		res.warnings = append(res.warnings, fmt.Sprintf("%s: negative size clamped to 0", in.Name))
	}
	if bundle.SizeBytes == 0 && in.Content != "" {
		bundle.SizeBytes = int64(len(in.Content))
	}

	if len(bundle.CompressedSizes) == 0 && in.Content != "" {
		sizes, err := compress.Sizes([]byte(in.Content))
		if err != nil {
			res.warnings = append(res.warnings, fmt.Sprintf("%s: measuring compressed sizes: %v", in.Name, err))
		} else {
			bundle.CompressedSizes = sizes
		}
	}

	res.attrs, res.warnings = attribute(in, bundle, moduleByID, res.warnings)
	res.bundle = bundle
	return res
}

// attribute picks the attribution strategy for one bundle: exact member
// module sizes when the build tool reported them, source-map sampling when
// the compiled text and map are both present, nothing otherwise.
func attribute(in models.BundleInput, bundle models.Bundle, moduleByID map[string]*models.Module, warnings []string) ([]models.SourceAttribution, []string) {
	if len(in.ModuleIDs) > 0 && len(moduleByID) > 0 {
		return attribution.FromModules(bundle, moduleByID), warnings
	}

	hasContent := in.Content != ""
	hasMap := len(in.SourceMap) > 0
	switch {
	case hasContent && hasMap:
		attrs, err := attribution.FromSourceMap(in.Name, in.Content, in.SourceMap)
		if err != nil {
			return nil, append(warnings, fmt.Sprintf("%s: skipping attribution: %v", in.Name, err))
		}
		return attrs, warnings
	case hasContent != hasMap:
		return nil, append(warnings, fmt.Sprintf("%s: content and source map are only useful together; skipping attribution", in.Name))
	}
	return nil, warnings
}

func assemble(report *models.RawBuildReport, modules []models.Module, results []bundleResult, opts Options) *models.Snapshot {
	snap := &models.Snapshot{
		Timestamp:       report.Timestamp,
		Commit:          report.Commit,
		Branch:          report.Branch,
		BuildDurationMS: report.BuildDurationMS,
		Modules:         modules,
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	for i := range results {
		res := &results[i]
		snap.Bundles = append(snap.Bundles, res.bundle)
		snap.Attributions = append(snap.Attributions, res.attrs...)
		snap.Warnings = append(snap.Warnings, res.warnings...)

		snap.TotalSizeBytes += res.bundle.SizeBytes
		if res.bundle.Kind != "" {
			if snap.SizeByKind == nil {
				snap.SizeByKind = make(map[models.BundleKind]int64)
			}
			snap.SizeByKind[res.bundle.Kind] += res.bundle.SizeBytes
		}
		for algo, size := range res.bundle.CompressedSizes {
			if snap.CompressedTotal == nil {
				snap.CompressedTotal = make(map[string]int64)
			}
			snap.CompressedTotal[algo] += size
		}
	}

	if len(modules) > 0 {
		snap.Graph = graph.Build(modules, graph.Options{
			CycleErrorLength: opts.Thresholds.CycleErrorLength,
		})
		if snap.Graph.DanglingEdges > 0 {
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("%d import edge(s) reference modules missing from the report", snap.Graph.DanglingEdges))
		}
		snap.Packages = aggregate.Packages(modules, snap.Bundles, snap.Graph)
	} else if len(snap.Attributions) > 0 {
		snap.Packages = aggregate.PackagesFromAttribution(snap.Attributions, snap.Bundles)
	}

	return snap
}
