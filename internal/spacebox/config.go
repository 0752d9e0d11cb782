package spacebox

import "fmt"

// CubeSizes are the selectable cube face resolutions.
var CubeSizes = []int{256, 512, 1024, 2048, 4096}

// Config selects what the next Generate call produces. Changes take effect on the next
// generation only.
type Config struct {
	PointStars  bool `json:"point_stars"`
	BrightStars bool `json:"bright_stars"`
	Nebula      bool `json:"nebula"`
	Sun         bool `json:"sun"`
	CubeSize    int  `json:"cube_size"`
	StarCount   int  `json:"star_count"`
}

func DefaultConfig() Config {
	return Config{
		PointStars:  true,
		BrightStars: true,
		Nebula:      true,
		Sun:         true,
		CubeSize:    1024,
		StarCount:   DefaultStarCount,
	}
}

func (c Config) Validate() error {
	if !IsCubeSize(c.CubeSize) {
		return fmt.Errorf("cube_size %d: must be one of %v", c.CubeSize, CubeSizes)
	}
	if c.StarCount <= 0 {
		return fmt.Errorf("star_count %d: must be positive", c.StarCount)
	}
	return nil
}

func IsCubeSize(size int) bool {
	for _, s := range CubeSizes {
		if s == size {
			return true
		}
	}
	return false
}

// StepCubeSize moves size by step entries through CubeSizes, clamping at both ends.
// Sizes outside the list snap to the default.
func StepCubeSize(size, step int) int {
	idx := -1
	for i, s := range CubeSizes {
		if s == size {
			idx = i
			break
		}
	}
	if idx < 0 {
		return DefaultConfig().CubeSize
	}
	idx += step
	if idx < 0 {
		idx = 0
	}
	if idx >= len(CubeSizes) {
		idx = len(CubeSizes) - 1
	}
	return CubeSizes[idx]
}
