package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuya-takeyama/missing-sync/pkg/syncerr"
)

func setupTrees(t *testing.T) (tmpDir, configFile string) {
	t.Helper()
	tmpDir = t.TempDir()

	files := map[string]string{
		"src/a/x.txt":             "0123456789",
		"src/b/y.txt":             "abcdefghij",
		"src/b/node_modules/z.js": "z",
	}
	for rel, content := range files {
		path := filepath.Join(tmpDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dest"), 0755))

	cfg := map[string]interface{}{
		"source": filepath.Join(tmpDir, "src"),
		"dest":   filepath.Join(tmpDir, "dest"),
		"ignore": []string{"node_modules"},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	configFile = filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configFile, data, 0644))
	return tmpDir, configFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDryRunThenCopy(t *testing.T) {
	tmpDir, configFile := setupTrees(t)

	out, err := execute(t, "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "missing x.txt from .../a\n")
	assert.Contains(t, out, "missing y.txt from .../b\n")
	assert.Contains(t, out, "found 2 files missing at destination.")

	entries, err := os.ReadDir(filepath.Join(tmpDir, "dest"))
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not copy")

	out, err = execute(t, "--config", configFile, "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "copying 2 files...")
	assert.Contains(t, out, "done.")

	for _, rel := range []string{"a/x.txt", "b/y.txt"} {
		data, err := os.ReadFile(filepath.Join(tmpDir, "dest", rel))
		require.NoError(t, err)
		assert.Len(t, data, 10)
	}
	_, err = os.Stat(filepath.Join(tmpDir, "dest", "b", "node_modules", "z.js"))
	assert.True(t, os.IsNotExist(err))

	out, err = execute(t, "--config", configFile, "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "copying 0 files...")
}

func TestPlanJSONFile(t *testing.T) {
	tmpDir, configFile := setupTrees(t)
	planFile := filepath.Join(tmpDir, "plan.json")

	_, err := execute(t, "--config", configFile, "--quiet", "--exclude", "b/**", "--plan-json-file", planFile)
	require.NoError(t, err)

	data, err := os.ReadFile(planFile)
	require.NoError(t, err)

	var plan PlanResult
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, PlanSummary{Missing: 1, SourceFiles: 1, DestFiles: 0}, plan.Summary)
	if assert.Len(t, plan.Operations, 1) {
		assert.Equal(t, PlanOperation{
			Source: filepath.Join(tmpDir, "src", "a", "x.txt"),
			Dest:   filepath.Join(tmpDir, "dest", "a", "x.txt"),
			Name:   "x.txt",
			Size:   10,
		}, plan.Operations[0])
	}
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.json"))

	var cfgErr *syncerr.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "want ConfigError, got %v", err)
}

func TestMissingSourceDirectory(t *testing.T) {
	tmpDir, configFile := setupTrees(t)
	require.NoError(t, os.RemoveAll(filepath.Join(tmpDir, "src")))

	_, err := execute(t, "--config", configFile, "--copy")

	var notFound *syncerr.NotFoundError
	assert.True(t, errors.As(err, &notFound), "want NotFoundError, got %v", err)
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}
