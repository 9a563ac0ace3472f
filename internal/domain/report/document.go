// Package report composes aggregates and insight sets into one hierarchical
// document and renders it. It is the only place report layout lives.
package report

import (
	"sort"
	"time"

	"github.com/okian/qainsight/internal/domain/aggregate"
	"github.com/okian/qainsight/internal/domain/insight"
	"github.com/okian/qainsight/internal/domain/model"
	"github.com/okian/qainsight/internal/domain/schema"
)

// Placeholder text for empty sections.
const (
	NotAvailable         = "N/A"
	NoGroupStrengths     = "No specific positive patterns identified in feedback"
	NoGroupImprovements  = "No specific improvement areas identified in feedback"
	NoEntityStrengths    = "Continue current good practices"
	NoEntityImprovements = "Performance meets expectations"
	DefaultTitle         = "QA Report"
	timestampLayout      = "2006-01-02 15:04:05"
)

// Entity carries one agent's summary and insight sets.
type Entity struct {
	Summary      aggregate.Summary
	Strengths    insight.Set
	Improvements insight.Set
}

// Input is everything the composer lays out.
type Input struct {
	ID          string
	Scope       string
	GeneratedAt time.Time

	// Numeric fields carried by the summaries, overall first.
	Fields []schema.Field

	Dataset      aggregate.Summary
	Groups       []aggregate.Summary
	Strengths    insight.Set
	Improvements insight.Set
	Entities     []Entity
}

// Metric is one labelled value; a nil Value is unavailable.
type Metric struct {
	Key   string   `yaml:"key"`
	Label string   `yaml:"label"`
	Value *float64 `yaml:"value"`
	Scale float64  `yaml:"scale,omitempty"`
}

// GroupRow is one line of the per-team overview table.
type GroupRow struct {
	Name     string `yaml:"name"`
	Records  int    `yaml:"records"`
	Entities int    `yaml:"entities"`
	Overall  Metric `yaml:"overall"`
}

// Section is one agent's subsection.
type Section struct {
	Name         string   `yaml:"name"`
	Records      int      `yaml:"conversations"`
	Performance  []Metric `yaml:"performance"`
	Skills       []Metric `yaml:"skills"`
	Strengths    []string `yaml:"strengths"`
	Improvements []string `yaml:"improvements"`
}

// Document is the structured report in its fixed section order.
type Document struct {
	ID           string     `yaml:"id,omitempty"`
	Title        string     `yaml:"title"`
	Scope        string     `yaml:"scope"`
	GeneratedAt  time.Time  `yaml:"generated_at"`
	Records      int        `yaml:"conversations"`
	Entities     int        `yaml:"members"`
	Averages     []Metric   `yaml:"averages"`
	Groups       []GroupRow `yaml:"groups,omitempty"`
	Strengths    []string   `yaml:"strengths"`
	Improvements []string   `yaml:"improvements"`
	Sections     []Section  `yaml:"agents"`
}

// Composer lays out report inputs.
type Composer struct {
	title string
	now   func() time.Time
}

// NewComposer creates a Composer.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{title: DefaultTitle, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose selects values from the summaries into a Document. Entities are
// ordered by identifier; entities with no records are skipped.
func (c *Composer) Compose(in Input) Document {
	doc := Document{
		ID:           in.ID,
		Title:        c.title,
		Scope:        in.Scope,
		GeneratedAt:  in.GeneratedAt,
		Records:      in.Dataset.Records,
		Entities:     in.Dataset.Entities,
		Strengths:    in.Strengths.Items,
		Improvements: in.Improvements.Items,
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = c.now()
	}
	for _, f := range in.Fields {
		doc.Averages = append(doc.Averages, metric(f, in.Dataset.Mean(f.Key)))
	}

	overall := overallField(in.Fields)
	if len(in.Groups) > 1 {
		for _, g := range in.Groups {
			doc.Groups = append(doc.Groups, GroupRow{
				Name:     g.Scope,
				Records:  g.Records,
				Entities: g.Entities,
				Overall:  metric(overall, g.Mean(overall.Key)),
			})
		}
	}

	entities := append([]Entity(nil), in.Entities...)
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Summary.Scope < entities[j].Summary.Scope
	})
	performance := performanceFields(in.Fields)
	for _, e := range entities {
		if e.Summary.Records == 0 || e.Summary.Scope == "" {
			continue
		}
		s := Section{
			Name:         e.Summary.Scope,
			Records:      e.Summary.Records,
			Strengths:    e.Strengths.Items,
			Improvements: e.Improvements.Items,
		}
		for _, f := range performance {
			s.Performance = append(s.Performance, metric(f, e.Summary.Mean(f.Key)))
		}
		for _, f := range in.Fields {
			if f.Kind == schema.KindSkill {
				s.Skills = append(s.Skills, metric(f, e.Summary.Mean(f.Key)))
			}
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}

func metric(f schema.Field, n model.Number) Metric {
	m := Metric{Key: f.Key, Label: f.Label, Scale: f.Scale}
	if n.Valid {
		v := n.Value
		m.Value = &v
	}
	return m
}

// overallField returns the overall definition, falling back to the built-in
// one when overall is neither mapped nor derived.
func overallField(fields []schema.Field) schema.Field {
	for _, f := range fields {
		if f.Kind == schema.KindOverall {
			return f
		}
	}
	f, _ := schema.DefaultTable().Field(schema.KeyOverall)
	return f
}

// performanceFields always lists the overall and secondary scores so an
// unmapped one still renders as unavailable.
func performanceFields(fields []schema.Field) []schema.Field {
	out := []schema.Field{overallField(fields)}
	found := false
	for _, f := range fields {
		if f.Kind == schema.KindSecondary {
			out = append(out, f)
			found = true
		}
	}
	if !found {
		cx, _ := schema.DefaultTable().Field(schema.KeyCX)
		out = append(out, cx)
	}
	return out
}
