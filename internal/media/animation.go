package media

import (
	"errors"
	"image"
	"image/draw"
	"image/gif"
	"time"
)

// DefaultFrameDelay replaces zero GIF delays, matching common browser behaviour
const DefaultFrameDelay = 100 * time.Millisecond

// Animation is a decoded frame list with a playback cursor. Frames are fully
// composited so each one can be drawn on its own.
type Animation struct {
	frames []*image.RGBA
	delays []time.Duration
	cursor int
	due    time.Time
}

// NewAnimation composites the frames of g, applying each frame's disposal
// method before the next one is drawn.
func NewAnimation(g *gif.GIF) (*Animation, error) {
	if len(g.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = image.Rectangle{}
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
	}

	canvas := image.NewRGBA(bounds)
	a := &Animation{
		frames: make([]*image.RGBA, 0, len(g.Image)),
		delays: make([]time.Duration, 0, len(g.Image)),
	}

	for i, p := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = clone(canvas)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		a.frames = append(a.frames, ToRGBA(clone(canvas)))

		delay := DefaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		a.delays = append(a.delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return a, nil
}

// Len returns the number of frames
func (a *Animation) Len() int {
	return len(a.frames)
}

// Cursor returns the index of the visible frame
func (a *Animation) Cursor() int {
	return a.cursor
}

// Frame returns the visible frame
func (a *Animation) Frame() *image.RGBA {
	return a.frames[a.cursor]
}

// Delay returns how long frame i stays visible
func (a *Animation) Delay(i int) time.Duration {
	return a.delays[i]
}

// Step advances to the next frame, looping at the end
func (a *Animation) Step() {
	a.cursor = (a.cursor + 1) % len(a.frames)
}

// Update advances playback to now. The first call starts the clock. It
// returns true when the visible frame changed.
func (a *Animation) Update(now time.Time) bool {
	if a.due.IsZero() {
		a.due = now.Add(a.delays[a.cursor])
		return false
	}

	changed := false
	for !now.Before(a.due) {
		a.Step()
		changed = true
		a.due = a.due.Add(a.delays[a.cursor])
		// After a long stall, resume from now instead of replaying every frame.
		if now.Sub(a.due) > a.total() {
			a.due = now.Add(a.delays[a.cursor])
		}
	}
	return changed
}

func (a *Animation) total() time.Duration {
	var d time.Duration
	for _, delay := range a.delays {
		d += delay
	}
	return d
}

func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
