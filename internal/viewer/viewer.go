// Package viewer holds the image viewer's state machine: which file is shown,
// how it is zoomed and panned, and when the window must be redrawn. It knows
// nothing about the windowing or GPU libraries; those sit behind Window and
// Canvas.
package viewer

import (
	"image"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"imageviewer/internal/camera"
	"imageviewer/internal/imageset"
	"imageviewer/internal/media"
)

// TitlePrefix starts every window title set after a load
const TitlePrefix = "Image Viewer - "

// Window is the part of the native window the viewer drives
type Window interface {
	SetTitle(title string)
	// Size returns the drawable area in pixels
	Size() (width, height int)
}

// Canvas draws rasters in world coordinates through a view
type Canvas interface {
	Clear()
	// DrawImage places img with its top-left corner at world (x, y)
	DrawImage(img *image.RGBA, x, y float64, view *camera.View)
	Present() error
	Resize(width, height int)
	// Forget releases any resources cached for img
	Forget(img *image.RGBA)
}

// State says what the viewer currently shows
type State int

const (
	StateError State = iota
	StateStatic
	StateAnimated
)

func (s State) String() string {
	switch s {
	case StateStatic:
		return "static"
	case StateAnimated:
		return "animated"
	default:
		return "error"
	}
}

// Direction selects the neighbour for Navigate
type Direction int

const (
	Previous Direction = iota
	Next
)

// Options configures a Viewer. Zero values select the defaults.
type Options struct {
	// ErrorText is drawn centered on the origin when a file fails to load
	ErrorText   *image.RGBA
	ZoomInStep  float64
	ZoomOutStep float64
	Logger      *zap.Logger
}

// Viewer owns the current image, the image set and the view transform
type Viewer struct {
	window Window
	canvas Canvas
	log    *zap.Logger

	set  *imageset.Set
	view *camera.View

	current *media.Image
	loadErr error

	errorText *image.RGBA
	zoomIn    float64
	zoomOut   float64

	// set while presents keep failing, so the failure is logged once
	presentFailing bool
}

// New creates a viewer over set and loads its current file
func New(window Window, canvas Canvas, set *imageset.Set, opts Options) *Viewer {
	v := &Viewer{
		window:    window,
		canvas:    canvas,
		log:       opts.Logger,
		set:       set,
		errorText: opts.ErrorText,
		zoomIn:    opts.ZoomInStep,
		zoomOut:   opts.ZoomOutStep,
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	if v.zoomIn <= 0 {
		v.zoomIn = camera.ZoomInStep
	}
	if v.zoomOut <= 0 {
		v.zoomOut = camera.ZoomOutStep
	}

	w, h := window.Size()
	v.view = camera.NewView(w, h)

	v.Load(set.Current())
	return v
}

// Load decodes path and shows it, or shows the error text when decoding
// fails. The title is set either way and the window is redrawn.
func (v *Viewer) Load(path string) {
	v.window.SetTitle(Title(path))

	img, err := media.Load(path)
	v.release()
	if err != nil {
		v.current, v.loadErr = nil, err
		v.log.Warn("Failed to load image", zap.String("path", path), zap.Error(err))
	} else {
		v.current, v.loadErr = img, nil
		v.logLoaded(img)
	}

	v.adaptView()
	v.Draw()
}

func (v *Viewer) logLoaded(img *media.Image) {
	if ce := v.log.Check(zap.DebugLevel, "Loaded image"); ce != nil {
		w, h := img.Size()
		fields := []zap.Field{
			zap.String("path", img.Path),
			zap.Int("width", w),
			zap.Int("height", h),
			zap.Bool("animated", img.Animated()),
		}
		if md, err := media.Describe(img.Path); err == nil {
			fields = append(fields,
				zap.String("format", md.Format),
				zap.Int64("bytes", md.Size),
				zap.Time("modified", md.ModTime),
			)
			if md.Camera != "" {
				fields = append(fields, zap.String("camera", md.Camera))
			}
			if !md.Taken.IsZero() {
				fields = append(fields, zap.Time("taken", md.Taken))
			}
		}
		ce.Write(fields...)
	}
}

// release drops the GPU resources of the image being replaced
func (v *Viewer) release() {
	if v.current == nil {
		return
	}
	for _, f := range v.current.Frames() {
		v.canvas.Forget(f)
	}
}

// Navigate loads the previous or next file, wrapping at either end
func (v *Viewer) Navigate(d Direction) {
	switch d {
	case Previous:
		v.Load(v.set.Previous())
	case Next:
		v.Load(v.set.Next())
	}
}

// JumpTo loads the file at index, clamped to the last file
func (v *Viewer) JumpTo(index int) {
	v.Load(v.set.Jump(index))
}

// Refresh reloads the current file from disk
func (v *Viewer) Refresh() {
	v.Load(v.set.Current())
}

// Zoom applies one scroll step. Positive delta zooms in. Ignored while dragging.
func (v *Viewer) Zoom(delta float64) {
	if delta == 0 || v.view.IsDragging() {
		return
	}
	if delta > 0 {
		v.view.ZoomBy(v.zoomIn)
	} else {
		v.view.ZoomBy(v.zoomOut)
	}
	v.Draw()
}

// BeginDrag starts panning from a pixel position
func (v *Viewer) BeginDrag(x, y float64) {
	v.view.StartDrag(x, y)
}

// UpdateDrag pans so the grabbed point follows the pointer
func (v *Viewer) UpdateDrag(x, y float64) {
	if v.view.Drag(x, y) {
		v.Draw()
	}
}

// EndDrag stops panning
func (v *Viewer) EndDrag() {
	v.view.EndDrag()
}

// Resize follows a change of the window's drawable size. Zero sizes, as
// reported for a minimised window, are ignored.
func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.canvas.Resize(width, height)
	v.adaptView()
	v.Draw()
}

// adaptView fits the current image, or resets to the window at 1:1 around
// the origin for the error text.
func (v *Viewer) adaptView() {
	w, h := v.window.Size()
	v.view.SetViewport(w, h)

	if v.current == nil {
		v.view.Reset()
		return
	}
	iw, ih := v.current.Size()
	v.view.Fit(float64(iw), float64(ih))
}

// Tick advances an animation to now and redraws. Presenting waits for
// vsync, which paces the animated event loop. It reports whether the
// visible frame changed and does nothing for static images.
func (v *Viewer) Tick(now time.Time) bool {
	if !v.Animated() {
		return false
	}
	changed := v.current.Animation().Update(now)
	v.Draw()
	return changed
}

// Draw clears the frame, draws the image or the error text and presents
func (v *Viewer) Draw() {
	v.canvas.Clear()
	switch {
	case v.current != nil:
		v.canvas.DrawImage(v.current.Frame(), 0, 0, v.view)
	case v.errorText != nil:
		b := v.errorText.Bounds()
		v.canvas.DrawImage(v.errorText, -float64(b.Dx())/2, -float64(b.Dy())/2, v.view)
	}
	err := v.canvas.Present()
	switch {
	case err != nil && !v.presentFailing:
		v.log.Warn("Present failed", zap.Error(err))
		v.presentFailing = true
	case err == nil && v.presentFailing:
		v.log.Info("Present recovered")
		v.presentFailing = false
	}
}

// Animated reports whether the event loop should poll every frame
func (v *Viewer) Animated() bool {
	return v.current != nil && v.current.Animated()
}

// State reports what is shown
func (v *Viewer) State() State {
	switch {
	case v.current == nil:
		return StateError
	case v.current.Animated():
		return StateAnimated
	default:
		return StateStatic
	}
}

// Err returns the last load error, nil when an image is shown
func (v *Viewer) Err() error {
	return v.loadErr
}

// Index returns the position of the shown file in the set
func (v *Viewer) Index() int {
	return v.set.Index()
}

// View exposes the view transform
func (v *Viewer) View() *camera.View {
	return v.view
}

// Title returns the window title for path
func Title(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		name = path
	}
	return TitlePrefix + name
}
