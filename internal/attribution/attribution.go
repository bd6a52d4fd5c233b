// Package attribution estimates how much of a compiled bundle's byte size
// originates from each original source file and package.
//
// Two strategies exist, selected by available input. The fast path uses exact
// per-module sizes the build tool already reported. The slow path samples the
// compiled text against a source map and scales distinct original lines by
// the bundle's average bytes per compiled line. The slow path is a deliberate
// approximation: sources whose code did not survive minification touch zero
// lines and get zero estimated size, and per-file estimates do not sum to the
// bundle's real size. Neither is renormalized away.
package attribution

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-sourcemap/sourcemap"

	"github.com/bundlescope/core/internal/models"
)

// maxSamplesPerLine bounds the column-sampling loop so attribution stays
// linear in the number of compiled lines.
const maxSamplesPerLine = 10

// resolveFunc maps a generated (line, column) pair, both 1-based, back to an
// original source location.
type resolveFunc func(genLine, genCol int) (source string, origLine int, ok bool)

// FromModules attributes bundle bytes on the fast path: the build tool
// reported each member module's exact contribution, so a package's share is
// just the sum of its member module sizes. Member ids that resolve to no
// known module are skipped.
func FromModules(bundle models.Bundle, modules map[string]*models.Module) []models.SourceAttribution {
	attrs := make([]models.SourceAttribution, 0, len(bundle.ModuleIDs))
	for _, id := range bundle.ModuleIDs {
		m := modules[id]
		if m == nil {
			continue
		}
		pkg := m.Package
		if pkg == "" {
			pkg, _ = ClassifyPath(m.ID)
		}
		attrs = append(attrs, models.SourceAttribution{
			SourcePath:         m.ID,
			Package:            pkg,
			EstimatedSizeBytes: m.SizeBytes,
			Bundles:            []string{bundle.Name},
		})
	}
	sortAttributions(attrs)
	return attrs
}

// FromSourceMap attributes bundle bytes on the slow path, sampling the
// compiled text against a standard source map. A malformed map is returned
// as an error so the caller can skip attribution for this bundle only.
func FromSourceMap(bundleName, content string, mapData []byte) ([]models.SourceAttribution, error) {
	consumer, err := sourcemap.Parse(bundleName+".map", mapData)
	if err != nil {
		return nil, fmt.Errorf("parse source map for %s: %w", bundleName, err)
	}

	resolve := func(genLine, genCol int) (string, int, bool) {
		source, _, origLine, _, ok := consumer.Source(genLine, genCol)
		return source, origLine, ok && source != ""
	}

	return sampleLines(bundleName, content, resolve), nil
}

// sampleLines visits up to maxSamplesPerLine evenly spaced columns per
// compiled line and records the distinct original lines touched per source
// file. Distinctness matters: repeated hits on the same original line must
// not inflate the estimate.
func sampleLines(bundleName, content string, resolve resolveFunc) []models.SourceAttribution {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil
	}

	touched := make(map[string]map[int]struct{})
	for i, line := range lines {
		length := len(line)
		if length == 0 {
			continue
		}
		step := length / maxSamplesPerLine
		if step < 1 {
			step = 1
		}
		for s := 0; s < maxSamplesPerLine; s++ {
			col := s * step
			if col >= length {
				break
			}
			source, origLine, ok := resolve(i+1, col+1)
			if !ok {
				continue
			}
			set := touched[source]
			if set == nil {
				set = make(map[int]struct{})
				touched[source] = set
			}
			set[origLine] = struct{}{}
		}
	}

	bytesPerLine := float64(len(content)) / float64(len(lines))

	attrs := make([]models.SourceAttribution, 0, len(touched))
	for source, origLines := range touched {
		pkg, _ := ClassifyPath(source)
		attrs = append(attrs, models.SourceAttribution{
			SourcePath:         source,
			Package:            pkg,
			EstimatedSizeBytes: int64(math.Round(float64(len(origLines)) * bytesPerLine)),
			LineCount:          len(origLines),
			Bundles:            []string{bundleName},
		})
	}
	sortAttributions(attrs)
	return attrs
}

// sortAttributions orders largest estimate first, path as tie break, so
// output is deterministic regardless of map iteration order.
func sortAttributions(attrs []models.SourceAttribution) {
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].EstimatedSizeBytes != attrs[j].EstimatedSizeBytes {
			return attrs[i].EstimatedSizeBytes > attrs[j].EstimatedSizeBytes
		}
		return attrs[i].SourcePath < attrs[j].SourcePath
	})
}

// splitLines splits compiled text on newlines, dropping the empty tail a
// trailing newline produces so it does not skew bytesPerLine.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
