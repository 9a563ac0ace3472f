// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the content of a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

// Value is one table cell: missing, text, or number.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing returns a missing cell.
func Missing() Value { return Value{} }

// Text returns a text cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Float returns a numeric cell. NaN and infinities are stored as missing.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Kind reports what the cell holds.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell carries no value.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// String returns the textual form of the cell and false when missing.
func (v Value) String() (string, bool) {
	switch v.kind {
	case KindText:
		return v.text, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64), true
	default:
		return "", false
	}
}

// Number coerces the cell to a number. Text that does not parse is missing.
func (v Value) Number() Number {
	switch v.kind {
	case KindNumber:
		return Some(v.num)
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return None()
		}
		return Some(f)
	default:
		return None()
	}
}

// Table is an already-parsed tabular dataset.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable builds a table, trimming surrounding whitespace from column names.
func NewTable(columns []string, rows [][]Value) *Table {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	return &Table{Columns: cols, Rows: rows}
}

// Cell returns the value at row r and column index c. Out-of-range is missing.
func (t *Table) Cell(r, c int) Value {
	if r < 0 || r >= len(t.Rows) || c < 0 {
		return Missing()
	}
	row := t.Rows[r]
	if c >= len(row) {
		return Missing()
	}
	return row[c]
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }
