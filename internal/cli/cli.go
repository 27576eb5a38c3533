// Package cli turns the command line into everything the window needs
// before it opens: the image set, configuration, logger and error text.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"

	"go.uber.org/zap"

	"imageviewer/internal/config"
	"imageviewer/internal/imageset"
	"imageviewer/internal/logger"
	"imageviewer/internal/platform"
	"imageviewer/internal/textimg"
)

// ErrorMessage is drawn in place of an image that failed to load
const ErrorMessage = "Unable to open file. The image might be corrupted or missing."

// Startup is the result of a successful Prepare
type Startup struct {
	Config    *config.Config
	Logger    *zap.Logger
	Set       *imageset.Set
	ErrorText *image.RGBA
}

// Prepare parses args (program name excluded) and loads what the viewer
// needs. Errors that ExitCode maps to 0 are the user-facing startup
// diagnostics; anything else is a failure.
func Prepare(args []string, usage io.Writer) (*Startup, error) {
	fs := flag.NewFlagSet("imageviewer", flag.ContinueOnError)
	fs.SetOutput(usage)
	configPath := fs.String("config", "", "path to the JSON config file (default: config.json next to the executable)")
	fs.Usage = func() {
		fmt.Fprintln(usage, "Usage: imageviewer [-config file] <image> [image ...]")
		fs.PrintDefaults()
		fmt.Fprintln(usage, "Controls:")
		fmt.Fprintln(usage, "  Left / Right  : Previous / next image")
		fmt.Fprintln(usage, "  1-9, 0        : Jump to image 1-10")
		fmt.Fprintln(usage, "  F5            : Reload")
		fmt.Fprintln(usage, "  Mouse wheel   : Zoom")
		fmt.Fprintln(usage, "  Mouse drag    : Pan")
		fmt.Fprintln(usage, "  Escape        : Exit")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set, err := imageset.Resolve(fs.Args())
	if err != nil {
		return nil, err
	}

	if *configPath == "" {
		*configPath, err = platform.Resolve(config.DefaultFileName)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log.Debug("Startup",
		zap.Strings("args", args),
		zap.String("config", *configPath),
		zap.Strings("images", set.Paths()),
		zap.Int("index", set.Index()),
	)
	if err := set.ScanErr(); err != nil {
		log.Warn("Could not list the image's directory", zap.Error(err))
	}

	fontPath, err := platform.Resolve(cfg.Font.File)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	face, err := textimg.LoadFace(fontPath, cfg.Font.Size)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	defer face.Close()

	return &Startup{
		Config:    cfg,
		Logger:    log,
		Set:       set,
		ErrorText: textimg.Render(face, ErrorMessage, color.White),
	}, nil
}

// ExitCode maps a Prepare error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil,
		errors.Is(err, flag.ErrHelp),
		errors.Is(err, imageset.ErrNoImages),
		errors.Is(err, imageset.ErrUnsupported),
		errors.Is(err, textimg.ErrFontNotFound):
		return 0
	}
	return 1
}

// Message returns the text printed for a Prepare error. Startup diagnostics
// print their fixed wording; a help request prints nothing more.
func Message(err error) string {
	if errors.Is(err, flag.ErrHelp) {
		return ""
	}
	for _, known := range []error{imageset.ErrNoImages, imageset.ErrUnsupported, textimg.ErrFontNotFound} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
