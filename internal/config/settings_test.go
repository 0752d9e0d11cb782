package config

import (
	"SpaceBox/internal/spacebox"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}
	if cfg.Generator != spacebox.DefaultConfig() {
		t.Errorf("Expected default generator options, got %+v", cfg.Generator)
	}
	if cfg.Seed != 0 {
		t.Errorf("Expected seed 0, got %d", cfg.Seed)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacebox.json")

	cfg := DefaultAppConfig()
	cfg.Seed = 42
	cfg.Generator.Sun = false
	cfg.Generator.CubeSize = 512
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"seed": 7, "generator": {"nebula": false}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Generator.Nebula {
		t.Error("Expected nebula to be disabled")
	}
	if !cfg.Generator.Sun || cfg.Generator.CubeSize != 1024 {
		t.Errorf("Expected unspecified keys to keep defaults, got %+v", cfg.Generator)
	}
	if cfg.WindowWidth != 1024 || cfg.WindowHeight != 768 {
		t.Errorf("Expected default window size, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"seed": `), 0644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("Expected an error for malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"generator": {"cube_size": 300}}`), 0644)
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("Expected an error for an unsupported cube size")
	}
}

func TestValidateWindowSize(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.WindowWidth = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for a zero window width")
	}
}
