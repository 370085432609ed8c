// Package config loads and validates codeatlas configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"codeatlas/internal/errors"
)

// Config represents the complete codeatlas configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Graph    GraphConfig    `json:"graph" mapstructure:"graph"`
	Layout   LayoutConfig   `json:"layout" mapstructure:"layout"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`

	// DebugInvariants makes graph contract violations fail loudly instead of
	// being logged and skipped.
	DebugInvariants bool `json:"debugInvariants" mapstructure:"debugInvariants"`
}

// AnalysisConfig contains per-file analysis configuration
type AnalysisConfig struct {
	// Workers is the size of the analysis worker pool. 0 means NumCPU.
	Workers          int      `json:"workers" mapstructure:"workers"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	ExcludedDirs     []string `json:"excludedDirs" mapstructure:"excludedDirs"`
	ExcludedFiles    []string `json:"excludedFiles" mapstructure:"excludedFiles"`
	IncludedDirs     []string `json:"includedDirs" mapstructure:"includedDirs"`
	IncludedFiles    []string `json:"includedFiles" mapstructure:"includedFiles"`
}

// GraphConfig contains graph construction configuration
type GraphConfig struct {
	MaxNodes       int `json:"maxNodes" mapstructure:"maxNodes"`
	MaxRootNodes   int `json:"maxRootNodes" mapstructure:"maxRootNodes"`
	MaxClusterSize int `json:"maxClusterSize" mapstructure:"maxClusterSize"`
	MinClusterSize int `json:"minClusterSize" mapstructure:"minClusterSize"`
}

// LayoutConfig contains layout engine configuration
type LayoutConfig struct {
	Default    string `json:"default" mapstructure:"default"`
	Iterations int    `json:"iterations" mapstructure:"iterations"`
	Seed       int64  `json:"seed" mapstructure:"seed"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Analysis: AnalysisConfig{
			Workers:          0,
			MaxFileSizeBytes: 1000000,
			ExcludedDirs: []string{
				"node_modules", "vendor", "__pycache__", ".git",
				"dist", "build", ".venv",
			},
		},
		Graph: GraphConfig{
			MaxNodes:       50,
			MaxRootNodes:   5,
			MaxClusterSize: 20,
			MinClusterSize: 2,
		},
		Layout: LayoutConfig{
			Default:    "hierarchical",
			Iterations: 50,
			Seed:       1,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .codeatlas/config.json under repoRoot.
// A missing config file yields the defaults.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".codeatlas"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .codeatlas/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".codeatlas")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return errors.New(errors.ConfigInvalid, "unsupported config version", nil)
	}
	if c.Graph.MaxNodes < 1 {
		return errors.New(errors.ConfigInvalid, "graph.maxNodes must be >= 1", nil)
	}
	if c.Graph.MinClusterSize > c.Graph.MaxClusterSize {
		return errors.New(errors.ConfigInvalid, "graph.minClusterSize exceeds maxClusterSize", nil)
	}
	switch c.Layout.Default {
	case "hierarchical", "force", "radial":
	default:
		return errors.New(errors.ConfigInvalid, "layout.default must be hierarchical, force, or radial", nil)
	}
	return nil
}
