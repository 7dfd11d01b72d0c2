package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Table   TableConfig   `toml:"table"`
	Presets PresetsConfig `toml:"presets"`
	Source  SourceConfig  `toml:"source"`
	Display DisplayConfig `toml:"display"`
}

type TableConfig struct {
	Style         string `toml:"style"`
	JoinSeparator string `toml:"join_separator"`
	EmptyMessage  string `toml:"empty_message"`
	EmptyCellText string `toml:"empty_cell_text"`
}

type PresetsConfig struct {
	Dir string `toml:"dir"`
}

type SourceConfig struct {
	SQLitePath string `toml:"sqlite_path"`
}

type DisplayConfig struct {
	Color bool `toml:"color"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Table: TableConfig{
			Style:         "plain",
			JoinSeparator: ", ",
			EmptyMessage:  "No entries to display.",
			EmptyCellText: "",
		},
		Presets: PresetsConfig{
			Dir: filepath.Join(home, ".config", "tably", "presets"),
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}

// Load reads config from file, merging with defaults. Returns defaults if file missing.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("TABLY_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "tably", "config.toml")
}
