package schema

import "strings"

// binding is a resolved field.
type binding struct {
	field  Field
	column string
	index  int
}

// Mapping is the immutable result of resolving a Table against dataset columns.
type Mapping struct {
	bindings []binding
	byKey    map[string]int
}

// Resolve picks, for each canonical key, the first alias present in columns.
// Column names are compared case-sensitively after trimming whitespace.
func Resolve(columns []string, table Table) (*Mapping, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	m := &Mapping{byKey: make(map[string]int, len(table))}
	var missing []Missing
	for _, f := range table {
		found := false
		for _, alias := range f.Aliases {
			if i, ok := index[alias]; ok {
				m.byKey[f.Key] = len(m.bindings)
				m.bindings = append(m.bindings, binding{field: f, column: alias, index: i})
				found = true
				break
			}
		}
		if !found && f.Required {
			missing = append(missing, Missing{Key: f.Key, Aliases: append([]string(nil), f.Aliases...)})
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Missing: missing}
	}
	return m, nil
}

// Has reports whether key was resolved.
func (m *Mapping) Has(key string) bool {
	_, ok := m.byKey[key]
	return ok
}

// Column returns the literal dataset column bound to key.
func (m *Mapping) Column(key string) (string, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return "", false
	}
	return m.bindings[i].column, true
}

// Index returns the dataset column index bound to key, or -1.
func (m *Mapping) Index(key string) int {
	i, ok := m.byKey[key]
	if !ok {
		return -1
	}
	return m.bindings[i].index
}

// Field returns the definition of a resolved key.
func (m *Mapping) Field(key string) (Field, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return Field{}, false
	}
	return m.bindings[i].field, true
}

// Fields returns resolved fields of the given kinds in declaration order.
// With no kinds, every resolved field is returned.
func (m *Mapping) Fields(kinds ...Kind) []Field {
	out := make([]Field, 0, len(m.bindings))
	for _, b := range m.bindings {
		if len(kinds) == 0 || hasKind(kinds, b.field.Kind) {
			out = append(out, b.field)
		}
	}
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}
