package viewer

import (
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"imageviewer/internal/camera"
	"imageviewer/internal/imageset"
)

type fakeWindow struct {
	width, height int
	titles        []string
}

func (w *fakeWindow) SetTitle(title string) { w.titles = append(w.titles, title) }
func (w *fakeWindow) Size() (int, int)      { return w.width, w.height }

func (w *fakeWindow) title() string {
	if len(w.titles) == 0 {
		return ""
	}
	return w.titles[len(w.titles)-1]
}

type drawCall struct {
	img  *image.RGBA
	x, y float64
	view camera.View
}

type fakeCanvas struct {
	clears     int
	presents   int
	draws      []drawCall
	resizes    [][2]int
	forgotten  []*image.RGBA
	presentErr error
}

func (c *fakeCanvas) Clear() { c.clears++; c.draws = c.draws[:0] }

func (c *fakeCanvas) DrawImage(img *image.RGBA, x, y float64, view *camera.View) {
	c.draws = append(c.draws, drawCall{img: img, x: x, y: y, view: *view})
}

func (c *fakeCanvas) Present() error {
	c.presents++
	return c.presentErr
}

func (c *fakeCanvas) Resize(w, h int)        { c.resizes = append(c.resizes, [2]int{w, h}) }
func (c *fakeCanvas) Forget(img *image.RGBA) { c.forgotten = append(c.forgotten, img) }

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func writeGIF(t *testing.T, path string, w, h, frames int) {
	t.Helper()
	g := &gif.GIF{Config: image.Config{Width: w, Height: h}}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
		for j := range p.Pix {
			p.Pix[j] = uint8(i + 1)
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 10)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
}

type fixture struct {
	dir    string
	window *fakeWindow
	canvas *fakeCanvas
	errImg *image.RGBA
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		dir:    t.TempDir(),
		window: &fakeWindow{width: 800, height: 600},
		canvas: &fakeCanvas{},
		errImg: image.NewRGBA(image.Rect(0, 0, 400, 30)),
	}
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *fixture) viewer(t *testing.T, index int, names ...string) *Viewer {
	t.Helper()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = f.path(n)
	}
	set, err := imageset.New(paths, index)
	require.NoError(t, err)
	return New(f.window, f.canvas, set, Options{ErrorText: f.errImg})
}

func TestNewLoadsCurrentAndFits(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 1600, 600)

	v := f.viewer(t, 0, "a.png")

	assert.Equal(t, StateStatic, v.State())
	assert.False(t, v.Animated())
	assert.NoError(t, v.Err())
	assert.Equal(t, "Image Viewer - a.png", f.window.title())
	assert.Equal(t, 2.0, v.View().Zoom)
	assert.Equal(t, 800.0, v.View().CenterX)
	assert.Equal(t, 300.0, v.View().CenterY)

	require.Len(t, f.canvas.draws, 1)
	assert.Equal(t, 0.0, f.canvas.draws[0].x)
	assert.Equal(t, 1, f.canvas.presents)
}

func TestFitForWindowSizedImageIsOne(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 800, 600)

	v := f.viewer(t, 0, "a.png")
	assert.Equal(t, 1.0, v.View().Zoom)
}

func TestLoadFailureShowsErrorText(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("b.png"), 10, 10)

	v := f.viewer(t, 0, "missing.png", "b.png")

	assert.Equal(t, StateError, v.State())
	assert.ErrorIs(t, v.Err(), os.ErrNotExist)
	assert.Equal(t, "Image Viewer - missing.png", f.window.title())
	assert.Equal(t, 0, v.Index())

	view := v.View()
	assert.Equal(t, 1.0, view.Zoom)
	assert.Zero(t, view.CenterX)
	assert.Zero(t, view.CenterY)

	require.Len(t, f.canvas.draws, 1)
	d := f.canvas.draws[0]
	assert.Same(t, f.errImg, d.img)
	assert.Equal(t, -200.0, d.x)
	assert.Equal(t, -15.0, d.y)

	// Navigation still works.
	v.Handle(ActionNext)
	assert.Equal(t, 1, v.Index())
	assert.Equal(t, StateStatic, v.State())
	assert.NoError(t, v.Err())
	assert.Equal(t, "Image Viewer - b.png", f.window.title())
}

func TestNavigateWrapsAndIsSymmetric(t *testing.T) {
	f := newFixture(t)
	names := []string{"a.png", "b.png", "c.png"}
	for _, n := range names {
		writePNG(t, f.path(n), 10, 10)
	}
	v := f.viewer(t, 0, names...)

	v.Navigate(Previous)
	assert.Equal(t, 2, v.Index())
	assert.Equal(t, "Image Viewer - c.png", f.window.title())

	v.Navigate(Next)
	assert.Equal(t, 0, v.Index())

	for start := 0; start < 3; start++ {
		v.JumpTo(start)
		v.Navigate(Next)
		v.Navigate(Previous)
		assert.Equal(t, start, v.Index())
		v.Navigate(Previous)
		v.Navigate(Next)
		assert.Equal(t, start, v.Index())
	}
}

func TestSlotActions(t *testing.T) {
	f := newFixture(t)
	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a'+i)) + ".png"
		writePNG(t, f.path(names[i]), 4, 4)
	}
	v := f.viewer(t, 0, names...)

	v.Handle(SlotAction(3))
	assert.Equal(t, 2, v.Index())
	v.Handle(SlotAction(9))
	assert.Equal(t, 8, v.Index())
	v.Handle(SlotAction(0))
	assert.Equal(t, 9, v.Index(), "0 selects the tenth file")
	v.Handle(SlotAction(1))
	assert.Equal(t, 0, v.Index())
}

func TestSlotBeyondSetClamps(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 4, 4)
	writePNG(t, f.path("b.png"), 4, 4)
	v := f.viewer(t, 0, "a.png", "b.png")

	for digit := 0; digit <= 9; digit++ {
		if digit == 1 {
			continue
		}
		v.Handle(SlotAction(digit))
		assert.Equal(t, 1, v.Index(), "digit %d", digit)
	}
	v.JumpTo(10)
	assert.Equal(t, 1, v.Index())
}

func TestRefreshReloadsFromDisk(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 100, 100)
	v := f.viewer(t, 0, "a.png")
	first := f.canvas.draws[0].img

	writePNG(t, f.path("a.png"), 200, 100)
	v.Handle(ActionRefresh)

	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 100.0, v.View().CenterX)
	assert.Contains(t, f.canvas.forgotten, first)
}

func TestRefreshAfterFileRemoved(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 10, 10)
	v := f.viewer(t, 0, "a.png")

	require.NoError(t, os.Remove(f.path("a.png")))
	v.Refresh()
	assert.Equal(t, StateError, v.State())
	assert.Equal(t, 0, v.Index())
}

func TestZoom(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 800, 600)
	v := f.viewer(t, 0, "a.png")
	cx, cy := v.View().CenterX, v.View().CenterY
	presents := f.canvas.presents

	v.Zoom(1)
	assert.InDelta(t, 0.9, v.View().Zoom, 1e-12)
	v.Zoom(-2.5)
	assert.InDelta(t, 0.99, v.View().Zoom, 1e-12)
	assert.Equal(t, cx, v.View().CenterX)
	assert.Equal(t, cy, v.View().CenterY)
	assert.Equal(t, presents+2, f.canvas.presents)

	v.Zoom(0)
	assert.Equal(t, presents+2, f.canvas.presents)

	w, h := v.View().Size()
	assert.InDelta(t, 800*0.99, w, 1e-9)
	assert.InDelta(t, 600*0.99, h, 1e-9)
}

func TestZoomIgnoredWhileDragging(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 800, 600)
	v := f.viewer(t, 0, "a.png")

	v.BeginDrag(10, 10)
	v.Zoom(1)
	assert.Equal(t, 1.0, v.View().Zoom)
	v.EndDrag()
	v.Zoom(1)
	assert.InDelta(t, 0.9, v.View().Zoom, 1e-12)
}

func TestCustomZoomSteps(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 800, 600)
	set, err := imageset.New([]string{f.path("a.png")}, 0)
	require.NoError(t, err)
	v := New(f.window, f.canvas, set, Options{ZoomInStep: 0.5, ZoomOutStep: 2})

	v.Zoom(1)
	v.Zoom(-1)
	assert.Equal(t, 1.0, v.View().Zoom)
}

func TestDragPansByWorldDelta(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 1600, 1200)
	v := f.viewer(t, 0, "a.png")
	cx, cy := v.View().CenterX, v.View().CenterY
	presents := f.canvas.presents

	v.UpdateDrag(50, 50)
	assert.Equal(t, presents, f.canvas.presents, "no redraw without a drag")

	v.BeginDrag(100, 100)
	v.UpdateDrag(130, 90)
	v.EndDrag()
	v.UpdateDrag(500, 500)

	// Zoom 2: 30px right and 10px up is (60, -20) in world space.
	assert.InDelta(t, cx-60, v.View().CenterX, 1e-9)
	assert.InDelta(t, cy+20, v.View().CenterY, 1e-9)
	assert.Equal(t, 2.0, v.View().Zoom)
	assert.Equal(t, presents+1, f.canvas.presents)
}

func TestResizeRefits(t *testing.T) {
	f := newFixture(t)
	writePNG(t, f.path("a.png"), 800, 600)
	v := f.viewer(t, 0, "a.png")
	v.Zoom(1)

	f.window.width, f.window.height = 400, 600
	v.Resize(400, 600)

	assert.Equal(t, [][2]int{{400, 600}}, f.canvas.resizes)
	assert.Equal(t, 2.0, v.View().Zoom)
	assert.Equal(t, 400, v.View().ViewportWidth)

	v.Resize(0, 0)
	assert.Len(t, f.canvas.resizes, 1)
}

func TestResizeInErrorStateKeepsWindowSizedView(t *testing.T) {
	f := newFixture(t)
	v := f.viewer(t, 0, "missing.png")

	f.window.width, f.window.height = 1024, 768
	v.Resize(1024, 768)

	w, h := v.View().Size()
	assert.Equal(t, 1024.0, w)
	assert.Equal(t, 768.0, h)
	assert.Zero(t, v.View().CenterX)
}

func TestGIFSelectsAnimatedMode(t *testing.T) {
	f := newFixture(t)
	writeGIF(t, f.path("anim.gif"), 8, 8, 3)
	writePNG(t, f.path("still.png"), 8, 8)
	v := f.viewer(t, 0, "anim.gif", "still.png")

	assert.True(t, v.Animated())
	assert.Equal(t, StateAnimated, v.State())

	start := time.Unix(100, 0)
	assert.False(t, v.Tick(start))
	presents := f.canvas.presents
	assert.True(t, v.Tick(start.Add(100*time.Millisecond)))
	assert.Equal(t, presents+1, f.canvas.presents)
	frame1 := f.canvas.draws[0].img
	assert.True(t, v.Tick(start.Add(200*time.Millisecond)))
	assert.NotSame(t, frame1, f.canvas.draws[0].img)

	v.Navigate(Next)
	assert.False(t, v.Animated())
	assert.Equal(t, StateStatic, v.State())
	assert.False(t, v.Tick(start.Add(time.Hour)))
	assert.Len(t, f.canvas.forgotten, 3, "every decoded frame is released")
}

func TestPresentErrorDoesNotPanic(t *testing.T) {
	f := newFixture(t)
	f.canvas.presentErr = errors.New("surface lost")
	writePNG(t, f.path("a.png"), 8, 8)

	v := f.viewer(t, 0, "a.png")
	assert.NotPanics(t, v.Draw)
}

func TestRepeatedPresentFailureLoggedOnce(t *testing.T) {
	f := newFixture(t)
	f.canvas.presentErr = errors.New("surface outdated")
	writePNG(t, f.path("a.png"), 8, 8)
	set, err := imageset.New([]string{f.path("a.png")}, 0)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	v := New(f.window, f.canvas, set, Options{ErrorText: f.errImg, Logger: zap.New(core)})
	for i := 0; i < 5; i++ {
		v.Draw()
	}
	assert.Equal(t, 1, logs.FilterMessage("Present failed").Len())

	f.canvas.presentErr = nil
	v.Draw()
	assert.Equal(t, 1, logs.FilterMessage("Present recovered").Len())

	f.canvas.presentErr = errors.New("surface lost")
	v.Draw()
	assert.Equal(t, 2, logs.FilterMessage("Present failed").Len())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Image Viewer - photo.png", Title(filepath.Join("img", "photo.png")))
	assert.Equal(t, "Image Viewer - a.gif", Title("a.gif"))
}

func TestSlotIndex(t *testing.T) {
	assert.Equal(t, -1, ActionNext.SlotIndex())
	assert.Equal(t, -1, SlotAction(11).SlotIndex())
	assert.Equal(t, 0, SlotAction(1).SlotIndex())
	assert.Equal(t, 9, SlotAction(0).SlotIndex())
}
