package insight

import "errors"

// ErrInvalidPattern is returned when a pattern family does not compile.
var ErrInvalidPattern = errors.New("invalid insight pattern")
