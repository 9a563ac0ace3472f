package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Render writes the document as markdown.
func (c *Composer) Render(doc Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", doc.Title, doc.Scope)

	b.WriteString("## Overview\n")
	if doc.ID != "" {
		fmt.Fprintf(&b, "- **Report ID:** %s\n", doc.ID)
	}
	fmt.Fprintf(&b, "- **Total Conversations:** %d\n", doc.Records)
	fmt.Fprintf(&b, "- **Team Members:** %d\n", doc.Entities)
	fmt.Fprintf(&b, "- **Report Generated:** %s\n", doc.GeneratedAt.Format(timestampLayout))
	for _, m := range doc.Averages {
		fmt.Fprintf(&b, "- **Average %s:** %s\n", m.Label, formatMetric(m))
	}
	if len(doc.Groups) > 0 {
		b.WriteString("\n### Team Breakdown\n")
		b.WriteString(groupTable(doc.Groups))
		b.WriteString("\n")
	}

	b.WriteString("\n### Team Strengths ✅\n")
	writeList(&b, doc.Strengths, NoGroupStrengths)
	b.WriteString("\n### Areas for Improvement ⚠️\n")
	writeList(&b, doc.Improvements, NoGroupImprovements)

	b.WriteString("\n---\n\n## Individual Agent Analysis\n\n")
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "### %s\n\n", s.Name)

		b.WriteString("**Overall Performance:**\n")
		for _, m := range s.Performance {
			fmt.Fprintf(&b, "- %s: %s\n", m.Label, formatMetric(m))
		}
		fmt.Fprintf(&b, "- Conversations: %d\n\n", s.Records)

		b.WriteString("**Skill Breakdown:**\n")
		if len(s.Skills) == 0 {
			fmt.Fprintf(&b, "- %s\n", NotAvailable)
		}
		for _, m := range s.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", m.Label, formatMetric(m))
		}

		b.WriteString("\n**Strengths ✅:**\n")
		writeList(&b, s.Strengths, NoEntityStrengths)
		b.WriteString("\n**Improvement Areas 🎯:**\n")
		writeList(&b, s.Improvements, NoEntityImprovements)

		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// RenderYAML writes the document as YAML; unavailable values encode as null.
func (c *Composer) RenderYAML(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}

func writeList(b *strings.Builder, items []string, placeholder string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "- %s\n", placeholder)
		return
	}
	// one line per bullet, whatever whitespace the source clause carried
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", strings.Join(strings.Fields(item), " "))
	}
}

func formatMetric(m Metric) string {
	if m.Value == nil {
		return NotAvailable
	}
	v := strconv.FormatFloat(*m.Value, 'f', 1, 64)
	if m.Scale > 0 {
		return v + "/" + strconv.FormatFloat(m.Scale, 'f', 1, 64)
	}
	return v
}

func groupTable(rows []GroupRow) string {
	t := table.NewWriter()
	label := rows[0].Overall.Label
	t.AppendHeader(table.Row{"Team", "Conversations", "Members", label})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.Records, r.Entities, formatMetric(r.Overall)})
	}
	return t.RenderMarkdown() + "\n"
}
