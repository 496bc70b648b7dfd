package relpath

import "errors"

// Sentinel errors describing why a target could not be normalized.
var (
	// ErrNotExist indicates the target does not exist, so it cannot be canonicalized.
	ErrNotExist = errors.New("path does not exist")
	// ErrUnrelated indicates no relative path links the target to the root
	// (for example, different volumes).
	ErrUnrelated = errors.New("path cannot be related to the root")
	// ErrOutsideRoot indicates the target lies above the root.
	ErrOutsideRoot = errors.New("path is outside the root")
)

// Error records a normalization failure for a specific target.
type Error struct {
	Path string
	Err  error
}

// Error returns the target followed by the cause.
func (e *Error) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
