package service

import (
	"time"

	"github.com/okian/qainsight/internal/adapters/memo"
	"github.com/okian/qainsight/internal/domain/aggregate"
	"github.com/okian/qainsight/internal/domain/insight"
	"github.com/okian/qainsight/internal/domain/report"
	"github.com/okian/qainsight/internal/domain/schema"
	"github.com/okian/qainsight/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkerCount bounds parallel per-agent processing.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithFieldTable replaces the built-in column alias table.
func WithFieldTable(t schema.Table) Option {
	return func(s *Service) {
		if len(t) > 0 {
			s.fields = t
		}
	}
}

// WithAliases adds column names per canonical key, tried after the built-in ones.
func WithAliases(aliases map[string][]string) Option {
	return func(s *Service) {
		s.aliases = aliases
	}
}

// WithGroupLabels sets the fallback label for underivable groups and the
// label used when no team or email column exists.
func WithGroupLabels(fallback, noEmail string) Option {
	return func(s *Service) {
		s.aggOpts = append(s.aggOpts,
			aggregate.WithFallbackGroup(fallback),
			aggregate.WithNoEmailGroup(noEmail))
	}
}

// WithExtractorOptions configures insight extraction.
func WithExtractorOptions(opts ...insight.Option) Option {
	return func(s *Service) {
		s.extOpts = append(s.extOpts, opts...)
	}
}

// WithTitle sets the report heading.
func WithTitle(title string) Option {
	return func(s *Service) {
		s.reportOpt = append(s.reportOpt, report.WithTitle(title))
	}
}

// WithClock sets the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStore sets the memo store for generated documents.
func WithStore(store memo.Store[report.Document]) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}
