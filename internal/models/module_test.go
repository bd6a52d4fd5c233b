// Package models defines the core data structures of the bundle analyzer.
// All types are plain values: constructed once per analysis run, read-only
// afterwards, and meant to be serialized by an external reporting layer.
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildImportedBy(t *testing.T) {
	t.Run("computes the inverse of imports", func(t *testing.T) {
		modules := []Module{
			{ID: "a", Imports: []string{"b", "c"}},
			{ID: "b", Imports: []string{"c"}},
			{ID: "c"},
		}

		RebuildImportedBy(modules)

		assert.Empty(t, modules[0].ImportedBy)
		assert.Equal(t, []string{"a"}, modules[1].ImportedBy)
		assert.Equal(t, []string{"a", "b"}, modules[2].ImportedBy)
	})

	t.Run("overwrites stale back references", func(t *testing.T) {
		modules := []Module{
			{ID: "a", Imports: []string{"b"}},
			{ID: "b", ImportedBy: []string{"ghost"}},
		}

		RebuildImportedBy(modules)

		assert.Equal(t, []string{"a"}, modules[1].ImportedBy)
	})

	t.Run("keeps back references to missing modules out of known modules", func(t *testing.T) {
		modules := []Module{
			{ID: "a", Imports: []string{"missing"}},
		}

		RebuildImportedBy(modules)

		assert.Empty(t, modules[0].ImportedBy)
	})
}

func TestModuleIsTreeShakeable(t *testing.T) {
	t.Run("unknown defaults to true", func(t *testing.T) {
		m := Module{ID: "a"}
		assert.True(t, m.IsTreeShakeable())
	})

	t.Run("explicit false wins", func(t *testing.T) {
		no := false
		m := Module{ID: "a", TreeShakeable: &no}
		assert.False(t, m.IsTreeShakeable())
	})

	t.Run("survives JSON round trip", func(t *testing.T) {
		jsonData := `{"id": "a", "size_bytes": 10, "tree_shakeable": false}`

		var m Module
		err := json.Unmarshal([]byte(jsonData), &m)

		require.NoError(t, err)
		assert.False(t, m.IsTreeShakeable())
	})
}

func TestRawBuildReportUnmarshal(t *testing.T) {
	t.Run("bundle with source map payload", func(t *testing.T) {
		jsonData := `{
			"bundles": [
				{
					"name": "main.js",
					"size_bytes": 2048,
					"kind": "code",
					"content": "var x=1;",
					"source_map": {"version": 3, "sources": ["src/index.js"], "mappings": "AAAA"}
				}
			],
			"modules": [
				{"id": "src/index.js", "size_bytes": 2048, "package": "first-party", "kind": "first-party"}
			]
		}`

		var report RawBuildReport
		err := json.Unmarshal([]byte(jsonData), &report)

		require.NoError(t, err)
		require.Len(t, report.Bundles, 1)
		assert.Equal(t, BundleCode, report.Bundles[0].Kind)
		assert.NotEmpty(t, report.Bundles[0].SourceMap)
		require.Len(t, report.Modules, 1)
		assert.Equal(t, KindFirstParty, report.Modules[0].Kind)
	})
}
