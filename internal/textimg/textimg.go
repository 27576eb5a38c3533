// Package textimg rasterises short messages with a TrueType font so they can
// be drawn like any other image.
package textimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrFontNotFound is returned when the font file is missing or unusable
var ErrFontNotFound = errors.New("Default font not found.")

// LoadFace reads a TTF/OTF file and returns a face of the given point size.
// Any failure to read or parse it is ErrFontNotFound.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w (%s)", ErrFontNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s: %v)", ErrFontNotFound, path, err)
	}
	face, err := ParseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w (%s: %v)", ErrFontNotFound, path, err)
	}
	return face, nil
}

// ParseFace builds a face from font file contents
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return face, nil
}

// Render draws msg in c onto a transparent image cropped to the text's ink bounds
func Render(face font.Face, msg string, c color.Color) *image.RGBA {
	d := &font.Drawer{Face: face, Src: image.NewUniform(c)}
	bounds, _ := d.BoundString(msg)

	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = dst
	d.Dot = fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y}
	d.DrawString(msg)
	return dst
}
