// Package config holds the analyzer's policy knobs as explicit values.
// The thresholds here are policies, not laws of nature; callers load them
// from a YAML file or pass defaults. The core never reads ambient
// environment state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds tunes classification and insight policies.
type Thresholds struct {
	// CycleErrorLength is the cycle chain length above which a cycle is
	// graded error instead of warning.
	CycleErrorLength int `yaml:"cycle_error_length"`

	// UnchangedPercent is the absolute diff percentage below which a
	// bundle change is classified unchanged.
	UnchangedPercent float64 `yaml:"unchanged_percent"`

	// GrowthWarnPercent is the total-size growth (or, negated, shrink)
	// percentage that triggers a regression or improvement insight.
	GrowthWarnPercent float64 `yaml:"growth_warn_percent"`

	// CalloutBytes is the absolute increase above which the single largest
	// bundle growth gets its own insight.
	CalloutBytes int64 `yaml:"callout_bytes"`

	// PackageSplitBytes and PackageCriticalBytes are the two tiers above
	// which a package draws a split/lazy-load recommendation.
	PackageSplitBytes    int64 `yaml:"package_split_bytes"`
	PackageCriticalBytes int64 `yaml:"package_critical_bytes"`
}

// Default returns the reference policy values.
func Default() Thresholds {
	return Thresholds{
		CycleErrorLength:     5,
		UnchangedPercent:     0.1,
		GrowthWarnPercent:    10,
		CalloutBytes:         50 * 1024,
		PackageSplitBytes:    100 * 1024,
		PackageCriticalBytes: 250 * 1024,
	}
}

// Load reads thresholds from a YAML file, falling back to defaults for any
// field left zero. A missing file is not an error: defaults apply.
func Load(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Thresholds{}, fmt.Errorf("read %s: %w", path, err)
	}

	th := Default()
	if err := yaml.Unmarshal(data, &th); err != nil {
		return Thresholds{}, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return th, nil
}
