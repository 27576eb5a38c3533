package app

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
	"go.uber.org/zap"

	"imageviewer/internal/imageset"
	"imageviewer/internal/renderer"
	"imageviewer/internal/viewer"
)

// Options configures the window and the viewer inside it
type Options struct {
	Width  int
	Height int
	Title  string

	Set         *imageset.Set
	ErrorText   *image.RGBA
	ZoomInStep  float64
	ZoomOutStep float64
	Logger      *zap.Logger
}

type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	viewer   *viewer.Viewer

	log *zap.Logger
}

// glfwWindow adapts a glfw window to viewer.Window
type glfwWindow struct {
	*glfw.Window
}

func (w glfwWindow) Size() (int, int) {
	return w.GetFramebufferSize()
}

// SetResizeCallback routes framebuffer size changes, which are in pixels
func (w glfwWindow) SetResizeCallback(cb viewer.ResizeCallback) viewer.ResizeCallback {
	var next glfw.FramebufferSizeCallback
	if cb != nil {
		next = func(_ *glfw.Window, width, height int) { cb(width, height) }
	}
	prev := w.SetFramebufferSizeCallback(next)
	if prev == nil {
		return nil
	}
	return func(width, height int) { prev(w.Window, width, height) }
}

func New(opts Options) (*App, error) {
	runtime.LockOSThread()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	app := &App{
		window: window,
		log:    log,
	}

	if err := app.initWebGPU(); err != nil {
		app.Cleanup()
		return nil, err
	}

	width, height := window.GetFramebufferSize()
	app.renderer, err = renderer.NewRenderer(app.adapter, app.device, app.queue, app.surface, uint32(width), uint32(height), log)
	if err != nil {
		app.Cleanup()
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	win := glfwWindow{window}
	app.viewer = viewer.New(win, app.renderer, opts.Set, viewer.Options{
		ErrorText:   opts.ErrorText,
		ZoomInStep:  opts.ZoomInStep,
		ZoomOutStep: opts.ZoomOutStep,
		Logger:      log,
	})

	app.setupCallbacks()
	viewer.InstallResizeHook(win, app.viewer)

	return app, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: instanceBackends,
	})
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	var err error
	app.surface, err = CreateSurface(app.instance, app.window)
	if err != nil {
		return fmt.Errorf("surface creation failed: %w", err)
	}

	// Request adapter - try with surface first, then without
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: app.surface,
		PowerPreference:   wgpu.PowerPreference_HighPerformance,
	})
	if err != nil {
		app.log.Warn("Adapter request with surface failed, retrying without", zap.Error(err))
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_HighPerformance,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	app.log.Debug("GPU adapter", zap.String("name", props.Name), zap.String("driver", props.DriverDescription))

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "ImageViewerDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

// pixelPos converts a cursor position in screen coordinates to framebuffer
// pixels, which differ on high-DPI displays.
func pixelPos(w *glfw.Window, x, y float64) (float64, float64) {
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

func (app *App) setupCallbacks() {
	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			x, y := w.GetCursorPos()
			app.viewer.BeginDrag(pixelPos(w, x, y))
		} else {
			app.viewer.EndDrag()
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		app.viewer.UpdateDrag(pixelPos(w, x, y))
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.viewer.Zoom(yoff)
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if a := actionFor(key); a != viewer.ActionNone {
			app.viewer.Handle(a)
		}
	})

	app.window.SetRefreshCallback(func(w *glfw.Window) {
		app.viewer.Draw()
	})
}

// actionFor maps a released key to a viewer action
func actionFor(key glfw.Key) viewer.Action {
	switch {
	case key == glfw.KeyLeft:
		return viewer.ActionPrevious
	case key == glfw.KeyRight:
		return viewer.ActionNext
	case key == glfw.KeyF5:
		return viewer.ActionRefresh
	case key >= glfw.Key0 && key <= glfw.Key9:
		return viewer.SlotAction(int(key - glfw.Key0))
	case key >= glfw.KeyKP0 && key <= glfw.KeyKP9:
		return viewer.SlotAction(int(key - glfw.KeyKP0))
	}
	return viewer.ActionNone
}

// Run processes events until the window is closed. Static images and a
// minimised window block in WaitEvents; animations advance and redraw every
// pass and only poll.
func (app *App) Run() error {
	for !app.window.ShouldClose() {
		// A minimised window has nothing to present to.
		if w, h := app.window.GetFramebufferSize(); w == 0 || h == 0 {
			glfw.WaitEvents()
			continue
		}
		if app.viewer.Animated() {
			app.viewer.Tick(time.Now())
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
	}

	return nil
}

func (app *App) Cleanup() {
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
