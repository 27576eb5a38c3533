// Package platform wraps the host OS calls the viewer depends on.
package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"
)

// OSError reports a failed host OS call together with the OS error code.
// It is not recoverable.
type OSError struct {
	Op   string
	Code uint32
	Err  error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%s: %v (code %d)", e.Op, e.Err, e.Code)
}

func (e *OSError) Unwrap() error {
	return e.Err
}

func newOSError(op string, err error) *OSError {
	oe := &OSError{Op: op, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		oe.Code = uint32(errno)
	}
	return oe
}

// ExecutableDir returns the directory holding the running executable
func ExecutableDir() (string, error) {
	path, err := executablePath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// Resolve joins name onto the executable directory unless name is absolute
func Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
