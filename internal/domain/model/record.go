package model

// Number is a nullable float. Valid is false when the value is unavailable.
type Number struct {
	Value float64
	Valid bool
}

// Some wraps an available value.
func Some(v float64) Number { return Number{Value: v, Valid: true} }

// None is the unavailable value.
func None() Number { return Number{} }

// Record is one scorecard row projected onto canonical fields.
type Record struct {
	Row    int    // source row index
	Entity string // agent identifier, empty when missing
	Group  string // leaf group label

	Numbers map[string]Number // canonical numeric key -> value
	Texts   map[string]string // canonical feedback key -> text, absent when missing
}

// Number returns the numeric field for key, unavailable when absent.
func (r *Record) Number(key string) Number {
	if r.Numbers == nil {
		return None()
	}
	return r.Numbers[key]
}

// Text returns the feedback text for key.
func (r *Record) Text(key string) (string, bool) {
	if r.Texts == nil {
		return "", false
	}
	s, ok := r.Texts[key]
	return s, ok
}
