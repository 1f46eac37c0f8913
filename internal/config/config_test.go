package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadFull(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ccg.yml", `
outputPath: docs/report.md
excludeDirs:
  - vendor
  - tmp
diagramMaxNodes: 12
summarizer:
  provider: gemini
  model: gemini-2.5-flash
verbose: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "docs/report.md", cfg.OutputPath)
	assert.Equal(t, []string{"vendor", "tmp"}, cfg.ExcludeDirs)
	assert.Equal(t, 12, cfg.DiagramMaxNodes)
	assert.Equal(t, "gemini", cfg.Summarizer.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Summarizer.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoadYamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ccg.yaml", "outputPath: out.md\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "out.md", cfg.OutputPath)
}

func TestLoadPrefersYml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ccg.yml", "outputPath: first.md\n")
	writeConfig(t, dir, "ccg.yaml", "outputPath: second.md\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "first.md", cfg.OutputPath)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ccg.yml", "outputPath: [oops\n")

	_, err := Load(dir)
	assert.Error(t, err)
}
