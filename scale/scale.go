// Package scale loads extracted frames and shrinks them to a target width.
package scale

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

var (
	// ErrIO marks a frame file that could not be opened.
	ErrIO = errors.New("read frame")
	// ErrDecode marks a frame file that is not a readable image.
	ErrDecode = errors.New("decode frame")
	// ErrWidth marks a target width or source image that cannot be scaled.
	ErrWidth = errors.New("invalid width")
)

// Height returns the height that keeps the aspect ratio of an origW x origH
// image scaled to width, truncated toward zero.
func Height(origW, origH, width int) int {
	if origW <= 0 {
		return 0
	}
	return origH * width / origW
}

// Load decodes the image at path.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return img, nil
}

// Resize scales img to width using nearest-neighbour sampling: every output
// pixel is copied from the source pixel under its centre, nothing is blended.
// Blocky output is fine here since every pixel becomes a terminal glyph anyway.
func Resize(img image.Image, width int) (image.Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrWidth, width)
	}

	b := img.Bounds()
	if b.Dx() == 0 {
		return nil, fmt.Errorf("%w: source image is empty", ErrWidth)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, Height(b.Dx(), b.Dy(), width)))
	if dst.Rect.Empty() {
		return dst, nil
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// File loads the frame at path and resizes it to width.
func File(path string, width int) (image.Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Resize(img, width)
}
