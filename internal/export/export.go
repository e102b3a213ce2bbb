// Package export flattens annotations into a copy of the source image and
// writes the result next to the original. The source image and the
// annotation sequence are never modified, so a failed export leaves
// everything exactly as it was.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
	"github.com/example/imagemark/internal/render"
)

// Suffix is inserted before the extension of exported files.
const Suffix = "-annotated"

const jpegQuality = 95

var (
	// ErrIO wraps filesystem failures: the destination could not be
	// created or written.
	ErrIO = errors.New("export: write failed")
	// ErrEncoding wraps image encoder failures.
	ErrEncoding = errors.New("export: encode failed")
)

// Compose returns a new image with the annotations flattened onto a copy of
// src at 1:1 scale. src is left untouched.
func Compose(src image.Image, snapshot []annotation.Annotation) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	render.Render(out, snapshot, nil, geometry.Identity())
	return out
}

// OutputPath derives the destination filename for an export of srcPath. The
// format follows the source extension; unknown extensions fall back to PNG
// and the extension is rewritten to match.
func OutputPath(srcPath string) string {
	ext := filepath.Ext(srcPath)
	base := strings.TrimSuffix(srcPath, ext)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
		return base + Suffix + ext
	default:
		return base + Suffix + ".png"
	}
}

// Encode writes img to w in the format implied by the destination path's
// extension. JPEG output uses quality 95; anything that is not JPEG is
// written as PNG.
func Encode(w io.Writer, img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
	}
	return nil
}

// SaveFile composes src with the annotations and writes the result beside
// srcPath, returning the path written. The file is staged in a temporary
// sibling and renamed into place so a failure never leaves a partial file.
func SaveFile(srcPath string, src image.Image, snapshot []annotation.Annotation) (string, error) {
	out := Compose(src, snapshot)
	dest := OutputPath(srcPath)

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".imagemark-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	tmpName := tmp.Name()
	if err := Encode(tmp, out, dest); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return dest, nil
}
