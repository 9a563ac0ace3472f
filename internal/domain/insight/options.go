package insight

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMaxInsights caps the number of snippets returned per call.
func WithMaxInsights(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxInsights = n
		}
	}
}

// WithMinTextLength sets the minimum combined length worth scanning.
func WithMinTextLength(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.minTextLength = n
		}
	}
}

// WithInsightLength sets the accepted clause length bounds, inclusive.
func WithInsightLength(minLen, maxLen int) Option {
	return func(e *Extractor) {
		if minLen >= 0 && maxLen >= minLen {
			e.minInsightLength = minLen
			e.maxInsightLength = maxLen
		}
	}
}

// WithMatchesPerFamily limits how many clauses each family may contribute.
func WithMatchesPerFamily(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.matchesPerFamily = n
		}
	}
}

// WithFamilies replaces the ordered pattern families for a polarity.
func WithFamilies(p Polarity, families ...string) Option {
	return func(e *Extractor) {
		if len(families) > 0 {
			e.families[p] = append([]string(nil), families...)
		}
	}
}
