// Package settings loads the YAML configuration and the JSON state file of
// the twisty command.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/twisty/internal/storage"
)

// Default values for a missing or partial config file.
const (
	DefaultSize           = 3
	DefaultScrambleLength = 25
	DefaultListLimit      = 20
)

// Config is the user configuration, read from ~/.twisty/config.yaml.
type Config struct {
	DBPath         string `yaml:"db_path,omitempty"`
	Size           int    `yaml:"size,omitempty"`
	ScrambleLength int    `yaml:"scramble_length,omitempty"`
	ListLimit      int    `yaml:"list_limit,omitempty"`
	// Seed makes scrambles reproducible when non-zero.
	Seed int64 `yaml:"seed,omitempty"`
	// DataFile, when set, plays a precomputed puzzle instead of a cube.
	DataFile string `yaml:"data_file,omitempty"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Size:           DefaultSize,
		ScrambleLength: DefaultScrambleLength,
		ListLimit:      DefaultListLimit,
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the config at path. A missing file yields the defaults;
// zero fields in a present file are filled from the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.Size != 0 {
		c.Size = o.Size
	}
	if o.ScrambleLength != 0 {
		c.ScrambleLength = o.ScrambleLength
	}
	if o.ListLimit != 0 {
		c.ListLimit = o.ListLimit
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.DataFile != "" {
		c.DataFile = o.DataFile
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", c.Size)
	}
	if c.ScrambleLength < 0 {
		return fmt.Errorf("scramble_length must not be negative, got %d", c.ScrambleLength)
	}
	if c.ListLimit < 1 {
		return fmt.Errorf("list_limit must be at least 1, got %d", c.ListLimit)
	}
	return nil
}

// Save writes the config to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
