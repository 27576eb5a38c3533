package viewer

// ResizeCallback receives a change of the window's drawable size
type ResizeCallback func(width, height int)

// ResizeNotifier is a window that reports size changes to one callback
type ResizeNotifier interface {
	// SetResizeCallback installs cb and returns the callback it replaced
	SetResizeCallback(cb ResizeCallback) ResizeCallback
}

// ResizeSink receives the window's size changes
type ResizeSink interface {
	Resize(width, height int)
}

// InstallResizeHook makes sink the first receiver of n's size notifications.
// A callback registered before stays installed as the fallback and is
// called after sink with the same arguments.
func InstallResizeHook(n ResizeNotifier, sink ResizeSink) {
	var fallback ResizeCallback
	fallback = n.SetResizeCallback(func(width, height int) {
		sink.Resize(width, height)
		if fallback != nil {
			fallback(width, height)
		}
	})
}
