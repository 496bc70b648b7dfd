package store

import "errors"

// Sentinel errors for locating and mutating a store.
var (
	// ErrNotFound indicates no store file exists in the starting directory or any ancestor.
	ErrNotFound = errors.New(FileName + " not found")
	// ErrRootPath indicates an attempt to describe the store root itself.
	ErrRootPath = errors.New("the store root cannot be described")
)

// FormatError records a store file that could not be decoded, or a mapping
// that could not be encoded.
type FormatError struct {
	Path string
	Op   string // "decode" or "encode"
	Err  error
}

// Error returns a human-readable string naming the file and operation.
func (e *FormatError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying codec error for use with errors.Is/As.
func (e *FormatError) Unwrap() error {
	return e.Err
}
