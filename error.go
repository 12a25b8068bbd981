package linklock

import "errors"

// ErrNotFound indicates a key was not found.
var ErrNotFound = errors.New("key not found")
