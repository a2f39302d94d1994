package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gterrors "github.com/gittrack/gt/internal/errors"
)

func TestLoad_CreatesDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// The config file was persisted for the user to edit.
	data, err := os.ReadFile(ProjectConfigPath(dir))
	require.NoError(t, err)

	var onDisk Config
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "main", onDisk.DefaultBranch)
	assert.True(t, onDisk.AutoPush)
	assert.Equal(t, "feat: {message}", onDisk.CommitTemplates["feature"])
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := ProjectConfigPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	custom := `{
  "default_branch": "develop",
  "remote": "upstream",
  "auto_push": false,
  "commit_templates": {"fix": "bugfix: {message}"}
}`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	cfg, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.DefaultBranch)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.False(t, cfg.AutoPush)
	assert.Equal(t, "bugfix: {message}", cfg.CommitTemplates["fix"])
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := ProjectConfigPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(`{"default_branch": "trunk"}`), 0o600))

	cfg, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "trunk", cfg.DefaultBranch)
	// Unset keys fall back to defaults via viper.
	assert.Equal(t, "origin", cfg.Remote)
	assert.True(t, cfg.AutoPush)
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := ProjectConfigPath(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, gterrors.ErrConfigCorrupt)
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", ".gt", "config.json"), ProjectConfigPath("/repo"))
}
