// Package aggregate computes null-tolerant score summaries over scorecard
// records at dataset, group, and entity granularity.
package aggregate

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/qainsight/internal/domain/model"
	"github.com/okian/qainsight/internal/domain/schema"
)

// Default group labels.
const (
	DefaultFallbackGroup = "Unknown"
	DefaultNoEmailGroup  = "Default Team"
)

var emailDomain = regexp.MustCompile(`@([^.]+)`)

// Stat is the mean of one numeric field over its non-missing values.
type Stat struct {
	Mean model.Number
	N    int
}

// Summary aggregates a set of records.
type Summary struct {
	Scope    string
	Records  int
	Entities int
	Stats    map[string]Stat
}

// Mean returns the mean for key, unavailable when the field is unmapped or
// had no values in scope.
func (s Summary) Mean(key string) model.Number {
	return s.Stats[key].Mean
}

// Partition is a named slice of records.
type Partition struct {
	Name    string
	Records []model.Record
}

// Aggregator projects table rows onto canonical fields and summarizes them.
type Aggregator struct {
	mapping       *schema.Mapping
	overallField  schema.Field
	fallbackGroup string
	noEmailGroup  string
}

// New creates an Aggregator for a resolved mapping.
func New(m *schema.Mapping, opts ...Option) *Aggregator {
	overall, _ := schema.DefaultTable().Field(schema.KeyOverall)
	a := &Aggregator{
		mapping:       m,
		overallField:  overall,
		fallbackGroup: DefaultFallbackGroup,
		noEmailGroup:  DefaultNoEmailGroup,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Derived reports whether overall_score is computed from skill scores.
func (a *Aggregator) Derived() bool {
	return !a.mapping.Has(schema.KeyOverall) && len(a.mapping.Fields(schema.KindSkill)) > 0
}

// HasOverall reports whether overall_score is mapped or derived.
func (a *Aggregator) HasOverall() bool {
	return a.mapping.Has(schema.KeyOverall) || a.Derived()
}

// NumericFields lists every numeric field summaries carry, overall first.
func (a *Aggregator) NumericFields() []schema.Field {
	fields := a.mapping.Fields(schema.KindOverall, schema.KindSkill, schema.KindSecondary)
	if a.Derived() {
		fields = append([]schema.Field{a.overallField}, fields...)
	}
	return fields
}

// FeedbackFields lists the mapped free-text fields in declaration order.
func (a *Aggregator) FeedbackFields() []schema.Field {
	return a.mapping.Fields(schema.KindFeedback)
}

// Records projects every table row onto canonical fields. Rows missing both
// the entity identifier and the overall value are dropped.
func (a *Aggregator) Records(t *model.Table) []model.Record {
	numeric := a.mapping.Fields(schema.KindOverall, schema.KindSkill, schema.KindSecondary)
	skills := a.mapping.Fields(schema.KindSkill)
	feedback := a.FeedbackFields()
	derived := a.Derived()
	hasOverall := a.HasOverall()
	title := cases.Title(language.Und)

	out := make([]model.Record, 0, t.Len())
	for r := range t.Rows {
		rec := model.Record{
			Row:     r,
			Numbers: make(map[string]model.Number, len(numeric)+1),
			Texts:   make(map[string]string, len(feedback)),
		}
		if s, ok := t.Cell(r, a.mapping.Index(schema.KeyName)).String(); ok {
			rec.Entity = strings.TrimSpace(s)
		}
		for _, f := range numeric {
			rec.Numbers[f.Key] = t.Cell(r, a.mapping.Index(f.Key)).Number()
		}
		if derived {
			rec.Numbers[schema.KeyOverall] = meanOf(rec.Numbers, skills)
		}
		for _, f := range feedback {
			if s, ok := t.Cell(r, a.mapping.Index(f.Key)).String(); ok {
				rec.Texts[f.Key] = s
			}
		}
		rec.Group = a.group(t, r, title)

		if rec.Entity == "" && (!hasOverall || !rec.Numbers[schema.KeyOverall].Valid) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (a *Aggregator) group(t *model.Table, r int, title cases.Caser) string {
	if a.mapping.Has(schema.KeyTeam) {
		if s, ok := t.Cell(r, a.mapping.Index(schema.KeyTeam)).String(); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	if !a.mapping.Has(schema.KeyEmail) {
		if a.mapping.Has(schema.KeyTeam) {
			return a.fallbackGroup
		}
		return a.noEmailGroup
	}
	s, ok := t.Cell(r, a.mapping.Index(schema.KeyEmail)).String()
	if !ok {
		return a.fallbackGroup
	}
	match := emailDomain.FindStringSubmatch(s)
	if match == nil {
		return a.fallbackGroup
	}
	return title.String(match[1])
}

// meanOf averages the valid values of fields in nums.
func meanOf(nums map[string]model.Number, fields []schema.Field) model.Number {
	var sum float64
	var n int
	for _, f := range fields {
		if v := nums[f.Key]; v.Valid {
			sum += v.Value
			n++
		}
	}
	if n == 0 {
		return model.None()
	}
	return model.Some(sum / float64(n))
}

// Summarize computes a Summary of records under the given scope name.
func (a *Aggregator) Summarize(scope string, records []model.Record) Summary {
	fields := a.NumericFields()
	s := Summary{
		Scope:   scope,
		Records: len(records),
		Stats:   make(map[string]Stat, len(fields)),
	}
	entities := make(map[string]struct{})
	for i := range records {
		if records[i].Entity != "" {
			entities[records[i].Entity] = struct{}{}
		}
	}
	s.Entities = len(entities)

	for _, f := range fields {
		var sum float64
		var n int
		for i := range records {
			if v := records[i].Number(f.Key); v.Valid {
				sum += v.Value
				n++
			}
		}
		st := Stat{N: n}
		if n > 0 {
			st.Mean = model.Some(sum / float64(n))
		}
		s.Stats[f.Key] = st
	}
	return s
}

// ByEntity partitions records by entity identifier, ascending. Records with no
// identifier are excluded.
func ByEntity(records []model.Record) []Partition {
	return partition(records, func(r *model.Record) string { return r.Entity })
}

// ByGroup partitions records by group label, ascending.
func ByGroup(records []model.Record) []Partition {
	return partition(records, func(r *model.Record) string { return r.Group })
}

func partition(records []model.Record, key func(*model.Record) string) []Partition {
	idx := make(map[string]int)
	var parts []Partition
	for i := range records {
		k := key(&records[i])
		if k == "" {
			continue
		}
		j, ok := idx[k]
		if !ok {
			j = len(parts)
			idx[k] = j
			parts = append(parts, Partition{Name: k})
		}
		parts[j].Records = append(parts[j].Records, records[i])
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	return parts
}

// Filter returns the records belonging to group. An empty group selects all.
func Filter(records []model.Record, group string) []model.Record {
	if group == "" {
		return records
	}
	var out []model.Record
	for i := range records {
		if records[i].Group == group {
			out = append(out, records[i])
		}
	}
	return out
}

// Groups summarizes every leaf group, sorted by name.
func (a *Aggregator) Groups(records []model.Record) []Summary {
	parts := ByGroup(records)
	out := make([]Summary, len(parts))
	for i, p := range parts {
		out[i] = a.Summarize(p.Name, p.Records)
	}
	return out
}

// Entities summarizes every entity, sorted by identifier.
func (a *Aggregator) Entities(records []model.Record) []Summary {
	parts := ByEntity(records)
	out := make([]Summary, len(parts))
	for i, p := range parts {
		out[i] = a.Summarize(p.Name, p.Records)
	}
	return out
}
