package loader

import "errors"

// Sentinel errors for loading scorecard exports.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrEmptyInput        = errors.New("input has no header row")
)
