package worker

import "errors"

// ErrJobPanicked wraps a value recovered from a panicking job.
var ErrJobPanicked = errors.New("job panicked")
