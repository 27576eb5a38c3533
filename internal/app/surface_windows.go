package app

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"
	"golang.org/x/sys/windows"
)

const instanceBackends = wgpu.InstanceBackend_DX12

// CreateSurface creates a WebGPU surface from the window's HWND
func CreateSurface(instance *wgpu.Instance, window *glfw.Window) (*wgpu.Surface, error) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return nil, errors.New("GetWin32Window returned nil")
	}

	var hinstance windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &hinstance); err != nil {
		return nil, fmt.Errorf("GetModuleHandleEx: %w", err)
	}

	surface := instance.CreateSurface(&wgpu.SurfaceDescriptor{
		Label: "MainSurface",
		WindowsHWND: &wgpu.SurfaceDescriptorFromWindowsHWND{
			Hwnd:      unsafe.Pointer(hwnd),
			Hinstance: unsafe.Pointer(hinstance),
		},
	})
	if surface == nil {
		return nil, errors.New("CreateSurface returned nil")
	}

	return surface, nil
}
