package common

import "errors"

// ErrConverterNotFound is returned when external program required to produce
// requested output cannot be located.
var ErrConverterNotFound = errors.New("converter not found")
