package mountfs

import (
	"errors"
	"strings"
)

// ErrPathTraversal is matched by every *PathTraversalError.
var ErrPathTraversal = errors.New("path traversal not supported")

// A PathTraversalError is returned when a logical path would resolve outside of the mount point.
// It is never a transient failure, retrying the same path always fails again.
type PathTraversalError struct {
	// Path is the logical path as given by the caller.
	Path string
	// MountPoint is the resolved mount root which would have been escaped.
	MountPoint string
}

func (e *PathTraversalError) Error() string {
	return "path traversal not supported: " + e.Path + " escapes " + e.MountPoint
}

// Is makes errors.Is(err, ErrPathTraversal) work.
func (e *PathTraversalError) Is(target error) bool {
	return target == ErrPathTraversal
}

// A MountError tells that the physical mount root could not be created.
type MountError struct {
	MountPoint string
	Err        error
}

func (e *MountError) Error() string {
	return "cannot mount " + e.MountPoint + ": " + e.Err.Error()
}

func (e *MountError) Unwrap() error {
	return e.Err
}

// OperationNotSupportedError signals arguments or calls which the file system cannot serve.
type OperationNotSupportedError struct {
	Message string
}

func (e *OperationNotSupportedError) Error() string {
	return e.Message
}

// IsPathTraversal checks if err or any error it wraps is a path traversal rejection.
func IsPathTraversal(err error) bool {
	return errors.Is(err, ErrPathTraversal)
}

// IsMountError checks if err or any error it wraps is a *MountError.
func IsMountError(err error) bool {
	var mountErr *MountError
	return errors.As(err, &mountErr)
}

func notSupported(parts ...string) error {
	return &OperationNotSupportedError{Message: strings.Join(parts, " ")}
}
