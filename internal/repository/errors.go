package repository

import "errors"

// ErrNotFound is returned when a row does not exist. Callers match it with
// errors.Is after the repo wraps it with entity context.
var ErrNotFound = errors.New("not found")
