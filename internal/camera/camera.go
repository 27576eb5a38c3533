package camera

import (
	"math"
)

const (
	MinZoom = 1e-4
	MaxZoom = 1e4

	// ZoomInStep and ZoomOutStep are applied per scroll notch. They are not
	// reciprocal: one step in followed by one step out leaves a factor of 0.99.
	ZoomInStep  = 0.9
	ZoomOutStep = 1.1
)

// View represents the image viewport. The visible world area is the window's
// pixel size multiplied by Zoom, centered on (CenterX, CenterY).
type View struct {
	// Multiplicative scale of the window size; larger values show more of the world
	Zoom float64

	// World position shown at the middle of the window
	CenterX float64
	CenterY float64

	// Viewport dimensions in pixels
	ViewportWidth  int
	ViewportHeight int

	// Drag state, in world coordinates
	isDragging bool
	lastDragX  float64
	lastDragY  float64
}

// NewView creates a view that maps world coordinates 1:1 onto a window of the given size
func NewView(width, height int) *View {
	return &View{
		Zoom:           1,
		CenterX:        float64(width) / 2,
		CenterY:        float64(height) / 2,
		ViewportWidth:  width,
		ViewportHeight: height,
	}
}

// SetViewport updates the viewport dimensions
func (v *View) SetViewport(width, height int) {
	v.ViewportWidth = width
	v.ViewportHeight = height
}

// Size returns the visible world area
func (v *View) Size() (width, height float64) {
	return float64(v.ViewportWidth) * v.Zoom, float64(v.ViewportHeight) * v.Zoom
}

// FitScale returns the zoom at which an image of the given size is fully
// contained, with its larger relative dimension spanning the window.
func (v *View) FitScale(imageWidth, imageHeight float64) float64 {
	if v.ViewportWidth <= 0 || v.ViewportHeight <= 0 {
		return 1
	}
	hScale := imageWidth / float64(v.ViewportWidth)
	vScale := imageHeight / float64(v.ViewportHeight)
	return math.Max(hScale, vScale)
}

// Fit zooms so the image fits the window and centers it
func (v *View) Fit(imageWidth, imageHeight float64) {
	v.Zoom = clampZoom(v.FitScale(imageWidth, imageHeight))
	v.CenterX = imageWidth / 2
	v.CenterY = imageHeight / 2
}

// Reset shows the world at 1:1 centered on the origin
func (v *View) Reset() {
	v.Zoom = 1
	v.CenterX = 0
	v.CenterY = 0
}

// ZoomBy multiplies the zoom factor by step. Non-positive steps are ignored.
func (v *View) ZoomBy(step float64) {
	if step <= 0 {
		return
	}
	v.Zoom = clampZoom(v.Zoom * step)
}

// Pan moves the view center by a world-space delta
func (v *View) Pan(dx, dy float64) {
	v.CenterX += dx
	v.CenterY += dy
}

// PixelToWorld converts a window pixel position to world coordinates
func (v *View) PixelToWorld(px, py float64) (x, y float64) {
	x = v.CenterX + (px-float64(v.ViewportWidth)/2)*v.Zoom
	y = v.CenterY + (py-float64(v.ViewportHeight)/2)*v.Zoom
	return x, y
}

// StartDrag begins a drag operation at a pixel position
func (v *View) StartDrag(px, py float64) {
	v.isDragging = true
	v.lastDragX, v.lastDragY = v.PixelToWorld(px, py)
}

// Drag continues a drag operation. The world point grabbed at StartDrag stays
// under the pointer. Returns false when no drag is in progress.
func (v *View) Drag(px, py float64) bool {
	if !v.isDragging {
		return false
	}

	x, y := v.PixelToWorld(px, py)
	v.Pan(v.lastDragX-x, v.lastDragY-y)

	v.lastDragX, v.lastDragY = v.PixelToWorld(px, py)
	return true
}

// EndDrag ends a drag operation
func (v *View) EndDrag() {
	v.isDragging = false
}

// IsDragging returns whether a drag is in progress
func (v *View) IsDragging() bool {
	return v.isDragging
}

// QuadTransform returns the offset and scale that map a unit quad (0..1 on
// both axes, y down) onto the world rectangle at (x, y) of size (w, h) in
// normalized device coordinates.
func (v *View) QuadTransform(x, y, w, h float64) (offsetX, offsetY, scaleX, scaleY float32) {
	sw, sh := v.Size()
	if sw == 0 || sh == 0 {
		return 0, 0, 0, 0
	}
	offsetX = float32((x - v.CenterX) * 2 / sw)
	offsetY = float32(-(y - v.CenterY) * 2 / sh)
	scaleX = float32(w * 2 / sw)
	scaleY = float32(-h * 2 / sh)
	return offsetX, offsetY, scaleX, scaleY
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
