package driver

import "errors"

var (
	// ErrTooDeep is returned when the input nests groups deeper than Config.MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")
	// ErrPanic wraps an internal failure recovered during a conversion.
	ErrPanic = errors.New("conversion failed")
)
