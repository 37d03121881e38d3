package interfaces

import "errors"

// ErrNotFound is returned by storage implementations when a record does not exist
var ErrNotFound = errors.New("record not found")
