package main

import (
	"os"
	"path/filepath"
	"sheetMerge/internal/config"
	"sheetMerge/internal/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_LogsConfigSource(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	cfg.Log.Directory = filepath.Join(dir, "logs")
	cfg.Log.Level = "debug"
	require.NoError(t, config.SaveConfig(path, cfg))

	loaded, closeLog, err := setup(path)
	require.NoError(t, err)
	require.NoError(t, closeLog())
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "sheetmerge.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loaded configuration")
	assert.Contains(t, string(data), path)
}

func TestSetup_BadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	cfg.Log.Directory = filepath.Join(dir, "logs")
	cfg.Log.Level = "loud"
	require.NoError(t, config.SaveConfig(path, cfg))

	_, _, err := setup(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting up logging")
}
