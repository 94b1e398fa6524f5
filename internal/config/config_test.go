package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coolc.yaml")
	content := "assembler: clang\ngcc_flags:\n  - -no-pie\n  - -g\noutput_dir: build\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "clang", cfg.Assembler)
	assert.Equal(t, []string{"-no-pie", "-g"}, cfg.GccFlags)
	assert.Equal(t, "build", cfg.OutputDir)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coolc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: build\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gcc", cfg.Assembler)
	assert.Equal(t, "build", cfg.OutputDir)
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coolc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assembler: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
