package report

import "time"

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithTitle sets the report heading.
func WithTitle(title string) Option {
	return func(c *Composer) {
		if title != "" {
			c.title = title
		}
	}
}

// WithClock sets the time source used when an input carries no timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}
