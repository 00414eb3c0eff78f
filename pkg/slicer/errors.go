package slicer

import "errors"

// Failure classes reported by Load, Regions and Slice. Returned errors wrap
// one of these together with the underlying cause, so callers can match the
// class with errors.Is and still print the OS error.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrDecode         = errors.New("decode error")
	ErrInvalidInsets  = errors.New("invalid insets")
	ErrWrite          = errors.New("write error")
)
