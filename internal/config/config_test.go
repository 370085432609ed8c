package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Graph.MaxNodes != 50 {
		t.Errorf("expected default maxNodes 50, got %d", cfg.Graph.MaxNodes)
	}
	if cfg.Layout.Default != "hierarchical" {
		t.Errorf("expected default layout hierarchical, got %s", cfg.Layout.Default)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Graph.MaxNodes != 50 {
		t.Errorf("missing config should give defaults, got maxNodes=%d", cfg.Graph.MaxNodes)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Graph.MaxNodes = 25
	cfg.Layout.Default = "force"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".codeatlas", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Graph.MaxNodes != 25 {
		t.Errorf("expected maxNodes 25, got %d", loaded.Graph.MaxNodes)
	}
	if loaded.Layout.Default != "force" {
		t.Errorf("expected layout force, got %s", loaded.Layout.Default)
	}
}

func TestValidateRejectsBadLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Default = "circular"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown layout")
	}
}

func TestValidateRejectsBadMaxNodes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph.MaxNodes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for maxNodes 0")
	}
}
