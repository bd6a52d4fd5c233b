// Package config holds the analyzer's policy knobs as explicit values.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		th, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		require.NoError(t, err)
		assert.Equal(t, Default(), th)
	})

	t.Run("file overrides only the fields it names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bundlescope.yaml")
		err := os.WriteFile(path, []byte("cycle_error_length: 3\nunchanged_percent: 0.5\n"), 0o644)
		require.NoError(t, err)

		th, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 3, th.CycleErrorLength)
		assert.Equal(t, 0.5, th.UnchangedPercent)
		assert.Equal(t, Default().PackageSplitBytes, th.PackageSplitBytes)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		err := os.WriteFile(path, []byte("cycle_error_length: [broken"), 0o644)
		require.NoError(t, err)

		_, err = Load(path)

		assert.Error(t, err)
	})
}
