package software

import (
	"SpaceBox/internal/logger"
	"SpaceBox/internal/renderer"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var faceFileNames = [renderer.MaxCubeFaces]string{"posx", "negx", "posy", "negy", "posz", "negz"}

// FaceFileName returns the PNG name a face is exported under.
func FaceFileName(face renderer.CubeFace) string {
	return faceFileNames[face] + ".png"
}

// SaveFaces writes the six faces of tex as PNG files into dir.
func (r *Renderer) SaveFaces(tex *renderer.CubeTexture, dir string) error {
	if _, ok := r.cubes[tex]; !ok {
		return fmt.Errorf("cube texture %s has no software storage", tex.Name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %v", dir, err)
	}

	for i := 0; i < renderer.MaxCubeFaces; i++ {
		face := renderer.CubeFace(i)
		path := filepath.Join(dir, FaceFileName(face))
		if err := savePNG(path, r, tex, face); err != nil {
			return err
		}
	}

	logger.Log.Info("Cube faces exported",
		zap.String("texture", tex.Name),
		zap.String("dir", dir),
		zap.Int("size", tex.Size()))
	return nil
}

func savePNG(path string, r *Renderer, tex *renderer.CubeTexture, face renderer.CubeFace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, r.Face(tex, face)); err != nil {
		return fmt.Errorf("failed to encode face %s: %v", face, err)
	}
	return f.Close()
}
