package aggregate

import "github.com/okian/qainsight/internal/domain/schema"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithFallbackGroup sets the label for records whose email yields no group.
func WithFallbackGroup(name string) Option {
	return func(a *Aggregator) {
		if name != "" {
			a.fallbackGroup = name
		}
	}
}

// WithNoEmailGroup sets the label used when neither a team nor an email
// column is mapped.
func WithNoEmailGroup(name string) Option {
	return func(a *Aggregator) {
		if name != "" {
			a.noEmailGroup = name
		}
	}
}

// WithOverallField sets the definition used for a derived overall score.
func WithOverallField(f schema.Field) Option {
	return func(a *Aggregator) {
		if f.Key == schema.KeyOverall {
			a.overallField = f
		}
	}
}
