package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"imageviewer/internal/camera"
)

// DefaultFileName is looked up next to the executable when no -config flag is given
const DefaultFileName = "config.json"

// Config holds application configuration
type Config struct {
	Window Window `json:"window"`
	Font   Font   `json:"font"`
	Zoom   Zoom   `json:"zoom"`
	Log    Log    `json:"log"`
}

// Window contains the initial window parameters
type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// Font names the TTF used for the placeholder text. File is resolved
// relative to the executable's directory.
type Font struct {
	File string  `json:"file"`
	Size float64 `json:"size"`
}

// Zoom contains the per-notch zoom multipliers
type Zoom struct {
	InStep  float64 `json:"in_step"`
	OutStep float64 `json:"out_step"`
}

// Log configures the zap logger. An empty File logs to stderr.
type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Image viewer",
		},
		Font: Font{
			File: "consola.ttf",
			Size: 24,
		},
		Zoom: Zoom{
			InStep:  camera.ZoomInStep,
			OutStep: camera.ZoomOutStep,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Validate checks that sizes and zoom steps are usable
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Font.File == "" {
		return errors.New("font file must be set")
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Font.Size)
	}
	if c.Zoom.InStep <= 0 || c.Zoom.OutStep <= 0 {
		return fmt.Errorf("zoom steps must be positive, got in=%v out=%v", c.Zoom.InStep, c.Zoom.OutStep)
	}
	return nil
}

// Load reads configuration from a file over the defaults. A missing file
// leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
