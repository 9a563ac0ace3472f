package loader

import "github.com/okian/qainsight/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithSheet selects a workbook sheet by name instead of the first one.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithMissingMarkers replaces the cell texts read as missing.
func WithMissingMarkers(markers ...string) Option {
	return func(l *Loader) {
		l.setMissing(markers)
	}
}
