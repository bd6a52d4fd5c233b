// Package attribution estimates how much of a compiled bundle's byte size
// originates from each original source file and package.
package attribution

import (
	"strings"

	"github.com/bundlescope/core/internal/models"
)

// vendorMarker is the directory segment that marks vendored dependencies in
// source paths; stagedMarker is the nested cache layout used by staged
// installers, where the real package name follows a second vendorMarker.
const (
	vendorMarker = "node_modules/"
	stagedMarker = ".pnpm/"
)

// runtimeMarkers denote bundler-injected glue rather than user or library code.
var runtimeMarkers = []string{
	"webpack/runtime",
	"webpack/bootstrap",
	"(webpack)",
}

// ClassifyPath derives the owning package and module kind from a source path.
// Paths under the vendor marker are libraries, reserved runtime markers are
// bundler glue, everything else is first-party application code.
func ClassifyPath(path string) (string, models.ModuleKind) {
	for _, marker := range runtimeMarkers {
		if strings.Contains(path, marker) {
			return models.PackageVendorRuntime, models.KindVendorRuntime
		}
	}

	idx := strings.Index(path, vendorMarker)
	if idx < 0 {
		return models.PackageFirstParty, models.KindFirstParty
	}

	rest := path[idx+len(vendorMarker):]
	if strings.HasPrefix(rest, stagedMarker) {
		// Staged layout: the real name follows a nested vendor marker,
		// node_modules/.pnpm/<staged>/node_modules/<name>/...
		if nested := strings.Index(rest, vendorMarker); nested >= 0 {
			if name := packageFromSegments(rest[nested+len(vendorMarker):]); name != "" {
				return name, models.KindLibrary
			}
		}
		if name := packageFromStaged(strings.TrimPrefix(rest, stagedMarker)); name != "" {
			return name, models.KindLibrary
		}
		return models.PackageFirstParty, models.KindFirstParty
	}

	if name := packageFromSegments(rest); name != "" {
		return name, models.KindLibrary
	}
	return models.PackageFirstParty, models.KindFirstParty
}

// packageFromSegments reads a package name from the path segments directly
// under a vendor marker, keeping both segments of a scoped name.
func packageFromSegments(rest string) string {
	segs := strings.SplitN(rest, "/", 3)
	if segs[0] == "" {
		return ""
	}
	if strings.HasPrefix(segs[0], "@") && len(segs) >= 2 && segs[1] != "" {
		return segs[0] + "/" + segs[1]
	}
	return segs[0]
}

// packageFromStaged reads a package name from a staged cache segment such as
// "@babel+core@7.23.0(supports-color@9.0.0)".
func packageFromStaged(rest string) string {
	staged := rest
	if slash := strings.IndexByte(staged, '/'); slash >= 0 {
		staged = staged[:slash]
	}
	if paren := strings.IndexByte(staged, '('); paren >= 0 {
		staged = staged[:paren]
	}
	if at := strings.LastIndexByte(staged, '@'); at > 0 {
		staged = staged[:at]
	}
	return strings.ReplaceAll(staged, "+", "/")
}
