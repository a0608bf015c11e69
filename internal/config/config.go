package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Merge MergeConfig `toml:"merge"`
	UI    UIConfig    `toml:"ui"`
	Log   LogConfig   `toml:"log"`
	AI    AIConfig    `toml:"ai"`
}

type MergeConfig struct {
	OutputPath    string `toml:"output_path"`
	SelectionFile string `toml:"selection_file"`
}

type UIConfig struct {
	ColumnsPerRow int `toml:"columns_per_row"`
	RowsPerPage   int `toml:"rows_per_page"`
	PreviewRows   int `toml:"preview_rows"`
}

type LogConfig struct {
	Directory string `toml:"directory"`
	Level     string `toml:"level"`
}

type AIConfig struct {
	Model          string  `toml:"model"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MinConfidence  float64 `toml:"min_confidence"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			OutputPath:    "output/merged.xlsx",
			SelectionFile: "output/selection.json",
		},
		UI: UIConfig{
			ColumnsPerRow: 4,
			RowsPerPage:   3,
			PreviewRows:   20,
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
		AI: AIConfig{
			Model:          "gemini-2.0-flash-exp",
			TimeoutSeconds: 60,
			MinConfidence:  0.8,
		},
	}
}

// LoadConfig loads configuration from the specified config file path,
// writing the defaults there first when the file does not exist. It runs
// before logging is set up, so it reports nothing itself.
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return defaultConfig, nil
	}

	// Load existing config
	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills every setting left out of the file
func (c *Config) applyDefaults() {
	def := Default()

	if c.Merge.OutputPath == "" {
		c.Merge.OutputPath = def.Merge.OutputPath
	}
	if c.Merge.SelectionFile == "" {
		c.Merge.SelectionFile = def.Merge.SelectionFile
	}
	if c.UI.ColumnsPerRow <= 0 {
		c.UI.ColumnsPerRow = def.UI.ColumnsPerRow
	}
	if c.UI.RowsPerPage <= 0 {
		c.UI.RowsPerPage = def.UI.RowsPerPage
	}
	if c.UI.PreviewRows <= 0 {
		c.UI.PreviewRows = def.UI.PreviewRows
	}
	if c.Log.Directory == "" {
		c.Log.Directory = def.Log.Directory
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.AI.Model == "" {
		c.AI.Model = def.AI.Model
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = def.AI.TimeoutSeconds
	}
	if c.AI.MinConfidence <= 0 {
		c.AI.MinConfidence = def.AI.MinConfidence
	}
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
