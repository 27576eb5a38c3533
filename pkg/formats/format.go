package formats

import (
	"path/filepath"
	"strings"
)

// Extension is a recognised image file extension, including the leading dot
type Extension string

const (
	BMP Extension = ".bmp"
	DDS Extension = ".dds"
	JPG Extension = ".jpg"
	PNG Extension = ".png"
	TGA Extension = ".tga"
	PSD Extension = ".psd"
	GIF Extension = ".gif"
)

// Supported lists the recognised extensions in the order they are reported to the user
var Supported = []Extension{BMP, DDS, JPG, PNG, TGA, PSD, GIF}

func (e Extension) String() string {
	return string(e)
}

// Animated reports whether files with this extension play as an animation
func (e Extension) Animated() bool {
	return e == GIF
}

// Of returns the extension of path. Matching is case-sensitive, so "photo.PNG"
// is not recognised.
func Of(path string) (Extension, bool) {
	ext := Extension(filepath.Ext(path))
	for _, s := range Supported {
		if s == ext {
			return ext, true
		}
	}
	return "", false
}

// IsSupported reports whether path has a recognised image extension
func IsSupported(path string) bool {
	_, ok := Of(path)
	return ok
}

// IsAnimated reports whether path names an animated format
func IsAnimated(path string) bool {
	ext, ok := Of(path)
	return ok && ext.Animated()
}

// List returns the supported extensions as a comma separated list
func List() string {
	parts := make([]string, 0, len(Supported))
	for _, s := range Supported {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
