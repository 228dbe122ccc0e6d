/*
Package tables flattens compiled grammars into numbered tables.

A grammar.Grammar is a graph of DFA states. For serialization and for
parsers which prefer table lookups, Flatten numbers the rules, states and
transition keys of a grammar:

- rules are numbered in source order, the start rule being rule 0
- states are numbered rule by rule, the initial state of a rule first
- keys (the columns of the transition table) are token categories in
  ascending order, followed by reserved strings in order of their values

Tables may be written as JSON and read back with Load. Fingerprint
creates a hash of the tables, which may be used to detect grammar changes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tables

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.tables'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.tables")
}

// NoState is the null-value of the transition tables.
const NoState = -1

// Tables is the flattened form of a grammar.
type Tables struct {
	Start  int     `json:"start"`  // index of the start rule
	Rules  []Rule  `json:"rules"`  // rules in source order
	Keys   []Key   `json:"keys"`   // columns of the transition table
	States []State `json:"states"` // states of all rules
	//
	transitions   *IntMatrix // state x key -> state
	nonterminals  *IntMatrix // state x rule -> state
	tokenIndex    map[pgen.TokType]int
	reservedIndex map[string]int
	ruleIndex     map[string]int
}

// Rule describes the states of a grammar rule.
type Rule struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"` // index of the initial state
	Size    int    `json:"size"`    // number of states of the rule
}

// Key is a column of the transition table, either a token category or a
// reserved string.
type Key struct {
	Name       string       `json:"name"`
	Category   pgen.TokType `json:"category,omitempty"`
	IsReserved bool         `json:"is_reserved,omitempty"`
	Reserved   string       `json:"reserved,omitempty"`
}

// State is a numbered DFA state.
type State struct {
	Rule         int    `json:"rule"`
	Final        bool   `json:"final,omitempty"`
	Transitions  []Edge `json:"transitions,omitempty"`  // Label is a key index
	Nonterminals []Edge `json:"nonterminals,omitempty"` // Label is a rule index
}

// Edge is a transition to state Next.
type Edge struct {
	Label int `json:"label"`
	Next  int `json:"next"`
}

// Flatten numbers the rules, states and keys of g. names is used to name
// token categories and may be nil.
func Flatten(g *grammar.Grammar, names pgen.TokTypeStringer) *Tables {
	t := &Tables{}
	stateIndex := make(map[*dfa.State]int)
	for r, name := range g.Rules() {
		if name == g.Start {
			t.Start = r
		}
		states := g.DFA(name)
		t.Rules = append(t.Rules, Rule{Name: name, Initial: len(t.States), Size: len(states)})
		for _, s := range states {
			stateIndex[s] = len(t.States)
			t.States = append(t.States, State{Rule: r, Final: s.IsFinal})
		}
	}
	// collect keys: token categories first, then reserved strings
	categories := make(map[pgen.TokType]bool)
	for _, name := range g.Rules() {
		for _, s := range g.DFA(name) {
			for key := range s.Transitions {
				if !key.IsReserved() {
					categories[key.Category] = true
				}
			}
		}
	}
	for _, c := range sortedCategories(categories) {
		t.Keys = append(t.Keys, Key{Name: categoryName(c, names), Category: c})
	}
	reserved := grammar.NewReservedStrings()
	reserved.Table = g.ReservedStrings
	reserved.Each(func(value string, _ *dfa.ReservedString) {
		t.Keys = append(t.Keys, Key{Name: fmt.Sprintf("%q", value), IsReserved: true, Reserved: value})
	})
	t.buildIndex()
	// edges
	for _, name := range g.Rules() {
		for _, s := range g.DFA(name) {
			n := stateIndex[s]
			for _, key := range grammar.SortedKeys(s) {
				e := Edge{Label: t.column(key), Next: stateIndex[s.Transitions[key].Next]}
				t.States[n].Transitions = append(t.States[n].Transitions, e)
			}
			for _, nt := range sortedNames(s.NonterminalArcs) {
				e := Edge{Label: t.ruleIndex[nt], Next: stateIndex[s.NonterminalArcs[nt]]}
				t.States[n].Nonterminals = append(t.States[n].Nonterminals, e)
			}
		}
	}
	t.buildMatrices()
	tracer().Infof("flattened grammar: %d rules, %d states, %d keys, %d transitions",
		len(t.Rules), len(t.States), len(t.Keys), t.transitions.ValueCount())
	return t
}

// Load reads tables in JSON format, as written by WriteJSON.
func Load(r io.Reader) (*Tables, error) {
	t := &Tables{}
	if err := json.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("cannot read tables: %w", err)
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	t.buildIndex()
	t.buildMatrices()
	return t, nil
}

// WriteJSON writes t in JSON format.
func (t *Tables) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Fingerprint returns a hash of t. Tables for the same grammar have the same
// fingerprint.
func (t *Tables) Fingerprint() (string, error) {
	return structhash.Hash(struct {
		Start  int
		Rules  []Rule
		Keys   []Key
		States []State
	}{t.Start, t.Rules, t.Keys, t.States}, 1)
}

// RuleIndex returns the index of a rule.
func (t *Tables) RuleIndex(name string) (int, bool) {
	r, ok := t.ruleIndex[name]
	return r, ok
}

// TokenKey returns the column of a token category.
func (t *Tables) TokenKey(c pgen.TokType) (int, bool) {
	k, ok := t.tokenIndex[c]
	return k, ok
}

// ReservedKey returns the column of a reserved string.
func (t *Tables) ReservedKey(value string) (int, bool) {
	k, ok := t.reservedIndex[value]
	return k, ok
}

// Next returns the state following state on key, or NoState.
func (t *Tables) Next(state, key int) int {
	return int(t.transitions.Value(state, key))
}

// NextOnRule returns the state following state after a rule has been
// recognized, or NoState.
func (t *Tables) NextOnRule(state, rule int) int {
	return int(t.nonterminals.Value(state, rule))
}

// Expected returns the keys which have a transition from state, in column
// order. Parsers may use it for error messages.
func (t *Tables) Expected(state int) []int {
	var keys []int
	t.transitions.Row(state, func(key int, _ int32) {
		keys = append(keys, key)
	})
	return keys
}

// ---------------------------------------------------------------------------

func (t *Tables) buildIndex() {
	t.tokenIndex = make(map[pgen.TokType]int)
	t.reservedIndex = make(map[string]int)
	for i, k := range t.Keys {
		if k.IsReserved {
			t.reservedIndex[k.Reserved] = i
		} else {
			t.tokenIndex[k.Category] = i
		}
	}
	t.ruleIndex = make(map[string]int, len(t.Rules))
	for i, r := range t.Rules {
		t.ruleIndex[r.Name] = i
	}
}

func (t *Tables) column(key dfa.TransitionKey) int {
	if key.IsReserved() {
		return t.reservedIndex[key.Reserved.Value]
	}
	return t.tokenIndex[key.Category]
}

func (t *Tables) buildMatrices() {
	t.transitions = NewIntMatrix(len(t.States), len(t.Keys), NoState)
	t.nonterminals = NewIntMatrix(len(t.States), len(t.Rules), NoState)
	for n, s := range t.States {
		for _, e := range s.Transitions {
			t.transitions.Set(n, e.Label, int32(e.Next))
		}
		for _, e := range s.Nonterminals {
			t.nonterminals.Set(n, e.Label, int32(e.Next))
		}
	}
}

// check validates the indices of tables read from a file.
func (t *Tables) check() error {
	if len(t.Rules) == 0 || t.Start < 0 || t.Start >= len(t.Rules) {
		return fmt.Errorf("tables: invalid start rule %d", t.Start)
	}
	for i, r := range t.Rules {
		if r.Size < 1 || r.Initial < 0 || r.Initial+r.Size > len(t.States) {
			return fmt.Errorf("tables: invalid states for rule %d (%s)", i, r.Name)
		}
	}
	for n, s := range t.States {
		if s.Rule < 0 || s.Rule >= len(t.Rules) {
			return fmt.Errorf("tables: state %d has invalid rule %d", n, s.Rule)
		}
		for _, e := range s.Transitions {
			if e.Label < 0 || e.Label >= len(t.Keys) || e.Next < 0 || e.Next >= len(t.States) {
				return fmt.Errorf("tables: state %d has invalid transition %v", n, e)
			}
		}
		for _, e := range s.Nonterminals {
			if e.Label < 0 || e.Label >= len(t.Rules) || e.Next < 0 || e.Next >= len(t.States) {
				return fmt.Errorf("tables: state %d has invalid non-terminal transition %v", n, e)
			}
		}
	}
	return nil
}

func categoryName(c pgen.TokType, names pgen.TokTypeStringer) string {
	if names == nil {
		return fmt.Sprintf("TokType(%d)", c)
	}
	return names(c)
}

func sortedCategories(set map[pgen.TokType]bool) []pgen.TokType {
	cats := make([]pgen.TokType, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func sortedNames(arcs map[string]*dfa.State) []string {
	names := make([]string, 0, len(arcs))
	for name := range arcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
