package db

import "errors"

// ErrNotFound is returned when a row is absent or not owned by the caller.
// Handlers translate it to a 404.
var ErrNotFound = errors.New("not found")
