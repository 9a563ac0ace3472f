package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for report generation.
var (
	ErrEntityProcessing = errors.New("entity processing failed")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrNilTable         = errors.New("table is nil")
)

// EntityError reports one agent that could not be summarized. The report is
// still produced without that agent.
type EntityError struct {
	Entity string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("entity %q: %v", e.Entity, e.Err)
}

// Unwrap exposes both ErrEntityProcessing and the underlying cause.
func (e *EntityError) Unwrap() []error { return []error{ErrEntityProcessing, e.Err} }
