package repository

import "errors"

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ErrCapacityExceeded is returned by the reservation write path when the
// requested window is already at the calendar's concurrency limit.
var ErrCapacityExceeded = errors.New("slot capacity exceeded")
