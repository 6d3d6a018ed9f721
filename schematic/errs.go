package schematic

import "errors"

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrUnsupportedKey    = errors.New("unsupported property key")
	ErrBadFilter         = errors.New("bad filter expression")
)
