//go:build !windows

package platform

import (
	"os"
	"path/filepath"
)

func executablePath() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", newOSError("os.Executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path, nil
}
