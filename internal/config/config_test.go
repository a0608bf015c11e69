package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig_FillsMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[merge]
output_path = "results/out.xlsx"

[ui]
preview_rows = 5

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "results/out.xlsx", cfg.Merge.OutputPath)
	assert.Equal(t, "output/selection.json", cfg.Merge.SelectionFile)
	assert.Equal(t, 5, cfg.UI.PreviewRows)
	assert.Equal(t, 4, cfg.UI.ColumnsPerRow)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logs", cfg.Log.Directory)
	assert.Equal(t, 0.8, cfg.AI.MinConfidence)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[merge\noutput_path = 1"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to load config file")
}
