// Package media decodes image files into frames ready for upload.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"github.com/oov/psd"
	"golang.org/x/image/bmp"

	"imageviewer/pkg/formats"
)

// ErrUnsupportedFormat is returned for files with no available decoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

type decodeFunc func(io.Reader) (image.Image, error)

var decoders = map[formats.Extension]decodeFunc{
	formats.PNG: png.Decode,
	formats.JPG: jpeg.Decode,
	formats.BMP: bmp.Decode,
	formats.TGA: tga.Decode,
	formats.PSD: decodePSD,
}

// decodePSD returns the document's merged composite. Layers are not decoded.
func decodePSD(r io.Reader) (image.Image, error) {
	doc, _, err := psd.Decode(r, &psd.DecodeOptions{SkipLayerImage: true})
	if err != nil {
		return nil, err
	}
	if doc.Picker == nil {
		return nil, errors.New("psd: no merged image")
	}
	return doc.Picker, nil
}

// Image is a decoded file: either a single raster or an animation
type Image struct {
	Path string

	static *image.RGBA
	anim   *Animation
}

// Load decodes the file at path, choosing the decoder by extension
func Load(path string) (*Image, error) {
	ext, ok := formats.Of(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	if ext.Animated() {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		anim, err := NewAnimation(g)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return &Image{Path: path, anim: anim}, nil
	}

	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &Image{Path: path, static: ToRGBA(img)}, nil
}

// Animated reports whether the image plays as an animation
func (im *Image) Animated() bool {
	return im.anim != nil
}

// Animation returns the playback state, or nil for a static image
func (im *Image) Animation() *Animation {
	return im.anim
}

// Frame returns the raster to display now
func (im *Image) Frame() *image.RGBA {
	if im.anim != nil {
		return im.anim.Frame()
	}
	return im.static
}

// Frames returns every raster the image can display
func (im *Image) Frames() []*image.RGBA {
	if im.anim != nil {
		return im.anim.frames
	}
	return []*image.RGBA{im.static}
}

// Size returns the pixel dimensions
func (im *Image) Size() (width, height int) {
	b := im.Frame().Bounds()
	return b.Dx(), b.Dy()
}

// ToRGBA converts img to an RGBA raster whose bounds start at the origin
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
