//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

// executablePath asks the loader for the module file name of the current
// process, growing the buffer until the name fits.
func executablePath() (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetModuleFileName(0, &buf[0], uint32(len(buf)))
		if err != nil {
			return "", newOSError("GetModuleFileName", err)
		}
		if n < uint32(len(buf)) {
			return windows.UTF16ToString(buf[:n]), nil
		}
		buf = make([]uint16, len(buf)*2)
	}
}
