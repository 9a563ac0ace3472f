// Package insight mines short strength and improvement clauses from free-text
// feedback using ordered lexical pattern families.
package insight

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Polarity selects the pattern families used for extraction.
type Polarity uint8

const (
	Positive Polarity = iota + 1
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// Default extraction parameters.
const (
	DefaultMaxInsights      = 3
	DefaultMinTextLength    = 10
	DefaultMinInsightLength = 20
	DefaultMaxInsightLength = 200
	DefaultMatchesPerFamily = 2
)

// PositiveFamilies are tried in order for strengths.
var PositiveFamilies = []string{
	`excellent|strong|clear|professional|effective`,
	`accurate|helpful|empathetic|warm|supportive`,
	`well[\s-]structured|easy to follow|friendly|polite`,
	`proactive|comprehensive|thorough|responsive`,
}

// NegativeFamilies are tried in order for improvement areas.
var NegativeFamilies = []string{
	`could.*improve|should.*focus|needs? to`,
	`lacking|missing|insufficient|unclear`,
	`enhance|develop|work on|pay.*attention|consider`,
}

// Set is an ordered, deduplicated list of extracted snippets.
type Set struct {
	Polarity Polarity
	Items    []string
}

// Empty reports whether no pattern was identified.
func (s Set) Empty() bool { return len(s.Items) == 0 }

// Extractor runs the clause-mining algorithm. It holds only compiled,
// read-only state and is safe for concurrent use.
type Extractor struct {
	maxInsights      int
	minTextLength    int
	minInsightLength int
	maxInsightLength int
	matchesPerFamily int

	families map[Polarity][]string
	compiled map[Polarity][]*regexp.Regexp
}

// NewExtractor compiles the pattern families. A family that fails to compile
// is reported as ErrInvalidPattern.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		maxInsights:      DefaultMaxInsights,
		minTextLength:    DefaultMinTextLength,
		minInsightLength: DefaultMinInsightLength,
		maxInsightLength: DefaultMaxInsightLength,
		matchesPerFamily: DefaultMatchesPerFamily,
		families: map[Polarity][]string{
			Positive: PositiveFamilies,
			Negative: NegativeFamilies,
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.compiled = make(map[Polarity][]*regexp.Regexp, len(e.families))
	for p, fams := range e.families {
		res := make([]*regexp.Regexp, 0, len(fams))
		for _, f := range fams {
			re, err := compileFamily(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %s family %q: %v", ErrInvalidPattern, p, f, err)
			}
			res = append(res, re)
		}
		e.compiled[p] = res
	}
	return e, nil
}

// compileFamily wraps a family so a match spans the whole clause around the
// term, bounded by sentence terminators.
func compileFamily(family string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)[^.!?]*(?:` + family + `)[^.!?]*[.!?]`)
}

// MaxInsights returns the configured result cap.
func (e *Extractor) MaxInsights() int { return e.maxInsights }

// Extract returns at most MaxInsights clauses of the requested polarity found
// in texts. The texts are joined with single spaces; input whose trimmed
// length is below the minimum yields an empty set. Lengths count runes.
func (e *Extractor) Extract(texts []string, polarity Polarity) Set {
	set := Set{Polarity: polarity}
	combined := strings.Join(texts, " ")
	if utf8.RuneCountInString(strings.TrimSpace(combined)) < e.minTextLength {
		return set
	}

	for _, re := range e.compiled[polarity] {
		for _, m := range re.FindAllString(combined, e.matchesPerFamily) {
			clause := strings.TrimSpace(m)
			if n := utf8.RuneCountInString(clause); n < e.minInsightLength || n > e.maxInsightLength {
				continue
			}
			if contains(set.Items, clause) {
				continue
			}
			set.Items = append(set.Items, clause)
			if len(set.Items) >= e.maxInsights {
				return set
			}
		}
	}
	return set
}

func contains(items []string, s string) bool {
	for _, v := range items {
		if v == s {
			return true
		}
	}
	return false
}
