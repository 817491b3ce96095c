// Package assets loads image files for mengine games and, during development,
// reloads them when they change on disk.
//
// PNG, JPEG and BMP files are supported.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
)

// IsImage reports whether path has an image extension this package decodes.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp":
		return true
	default:
		return false
	}
}

// Decode decodes an image in any supported format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode image: %w", err)
	}
	return img, nil
}

// LoadFile decodes the image at path without uploading it to the GPU.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", path, err)
	}
	return img, nil
}

// LoadImage decodes the image at path into an ebiten image.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}
