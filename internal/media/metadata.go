package media

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"imageviewer/pkg/formats"
)

// Metadata describes a file without decoding its pixels
type Metadata struct {
	Size    int64
	ModTime time.Time
	Format  string

	// From EXIF, when present
	Camera string
	Taken  time.Time
}

// Describe reads file stats and EXIF fields from path without decoding pixels
func Describe(path string) (*Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}
	md := &Metadata{Size: info.Size(), ModTime: info.ModTime()}

	ext, _ := formats.Of(path)
	md.Format = ext.String()

	x, err := exif.Decode(file)
	if err != nil {
		// Most formats carry no EXIF block.
		return md, nil
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			md.Camera = s
		}
	}
	if taken, err := x.DateTime(); err == nil {
		md.Taken = taken
	}
	return md, nil
}
