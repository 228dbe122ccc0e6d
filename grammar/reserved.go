package grammar

import (
	"sort"

	"github.com/npillmayer/pgen/dfa"
)

// ReservedStrings is a table to intern reserved strings (map-like semantics).
// There is at most one dfa.ReservedString per value.
type ReservedStrings struct {
	Table map[string]*dfa.ReservedString
}

// NewReservedStrings creates an empty table.
func NewReservedStrings() *ReservedStrings {
	return &ReservedStrings{Table: make(map[string]*dfa.ReservedString)}
}

// Resolve checks for a reserved string in the table.
// Returns a reserved string or nil.
func (t *ReservedStrings) Resolve(value string) *dfa.ReservedString {
	return t.Table[value]
}

// ResolveOrDefine finds a reserved string in the table, or inserts a new one
// if not found. Returns the reserved string and a flag, signalling whether it
// has already been present.
func (t *ReservedStrings) ResolveOrDefine(value string) (*dfa.ReservedString, bool) {
	if r := t.Resolve(value); r != nil {
		return r, true
	}
	r := &dfa.ReservedString{Value: value}
	t.Table[value] = r
	tracer().Debugf("new reserved string %q", value)
	return r, false
}

// Size counts the reserved strings in a table.
func (t *ReservedStrings) Size() int {
	return len(t.Table)
}

// Each iterates over the reserved strings in the table, in order of their values,
// executing a mapper function.
func (t *ReservedStrings) Each(mapper func(string, *dfa.ReservedString)) {
	values := make([]string, 0, len(t.Table))
	for v := range t.Table {
		values = append(values, v)
	}
	sort.Strings(values)
	for _, v := range values {
		mapper(v, t.Table[v])
	}
}
