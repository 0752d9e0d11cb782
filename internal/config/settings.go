package config

import (
	"SpaceBox/internal/spacebox"
	"encoding/json"
	"fmt"
	"os"
)

// AppConfig is the JSON settings file shared by the demo and the preview tool.
type AppConfig struct {
	WindowWidth  int32 `json:"window_width"`
	WindowHeight int32 `json:"window_height"`
	WindowX      int   `json:"window_x"`
	WindowY      int   `json:"window_y"`
	Debug        bool  `json:"debug"`
	InvertMouse  bool  `json:"invert_mouse"`

	// Seed fixes the random stream; 0 picks a new seed every run.
	Seed int64 `json:"seed"`

	Generator spacebox.Config `json:"generator"`

	// ExportDir is where the preview tool writes PNG faces. Empty disables export.
	ExportDir string `json:"export_dir,omitempty"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		WindowWidth:  1024,
		WindowHeight: 768,
		WindowX:      100,
		WindowY:      100,
		Generator:    spacebox.DefaultConfig(),
	}
}

// LoadConfig reads path over the defaults, so missing keys keep their default value.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	return nil
}

func (c AppConfig) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", c.WindowWidth, c.WindowHeight)
	}
	return c.Generator.Validate()
}
