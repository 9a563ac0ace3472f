package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn matches any MissingColumnError via errors.Is.
var ErrMissingColumn = errors.New("missing required column")

// Missing names one unresolved required key and the aliases searched for it.
type Missing struct {
	Key     string
	Aliases []string
}

// MissingColumnError reports every required key that had no alias present.
type MissingColumnError struct {
	Missing []Missing
}

func (e *MissingColumnError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s (looking for: %s)", m.Key, strings.Join(m.Aliases, ", "))
	}
	return "missing required columns: " + strings.Join(parts, ", ")
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
