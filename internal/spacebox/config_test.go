package spacebox

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.PointStars || !cfg.BrightStars || !cfg.Nebula || !cfg.Sun {
		t.Error("All features should be enabled by default")
	}
	if cfg.CubeSize != 1024 {
		t.Errorf("Expected default cube size 1024, got %d", cfg.CubeSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CubeSize = 300
	if cfg.Validate() == nil {
		t.Error("Expected error for cube size outside the supported set")
	}

	cfg = DefaultConfig()
	cfg.StarCount = 0
	if cfg.Validate() == nil {
		t.Error("Expected error for zero star count")
	}
}

func TestStepCubeSize(t *testing.T) {
	cases := []struct {
		size, step, want int
	}{
		{256, 1, 512},
		{1024, -1, 512},
		{256, -1, 256},
		{4096, 1, 4096},
		{512, 3, 4096},
		{300, 1, 1024},
	}
	for _, c := range cases {
		if got := StepCubeSize(c.size, c.step); got != c.want {
			t.Errorf("StepCubeSize(%d, %d) = %d, want %d", c.size, c.step, got, c.want)
		}
	}
}

func TestNewRandomSeeded(t *testing.T) {
	a, b := NewRandom(5), NewRandom(5)
	for i := 0; i < 10; i++ {
		if a.Float32() != b.Float32() {
			t.Fatal("Equal seeds should give equal streams")
		}
	}
}
