package core

import "errors"

// Common errors.
var (
	// ErrNotFound is a soft error: the requested note does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrValidation reports input rejected before touching the store.
	ErrValidation = errors.New("invalid note")
	// ErrStorage wraps every failure reading, decoding or writing the backing file.
	ErrStorage = errors.New("storage failure")
	// ErrReadOnly is returned by mutating operations on a read-only repository.
	ErrReadOnly = errors.New("repository is in read-only mode")
)
