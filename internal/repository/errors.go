package repository

import "errors"

// ErrNotFound is wrapped by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned when a plan write loses the compare-and-swap
// against a concurrent edit. The caller should re-read and retry.
var ErrVersionConflict = errors.New("version conflict")
