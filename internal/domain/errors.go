package domain

import "errors"

// ErrNotFound is returned when a trip or view does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails validation
// (e.g. a trip without stops, an out-of-range coordinate).
var ErrValidation = errors.New("validation error")
