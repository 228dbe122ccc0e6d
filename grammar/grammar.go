package grammar

import (
	"fmt"
	"sort"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/nfa"
	"github.com/npillmayer/schuko/gconf"
	"go.uber.org/multierr"
)

// TokenNamespace resolves names of token categories, e.g. "NAME" or "NUMBER".
// scanner.Namespace implements it.
type TokenNamespace interface {
	Lookup(name string) (pgen.TokType, bool)
}

// Grammar is a compiled grammar: a minimized DFA for every rule, with
// compiled transitions. A Grammar is immutable after creation.
type Grammar struct {
	Start           string                         // name of the start rule
	RuleToDFAs      map[string][]*dfa.State        // DFA states per rule, initial state first
	ReservedStrings map[string]*dfa.ReservedString // interned literals
	rules           []string                       // rule names in source order
}

// Rules returns the names of the rules of g, in source order.
func (g *Grammar) Rules() []string {
	r := make([]string, len(g.rules))
	copy(r, g.rules)
	return r
}

// DFA returns the DFA states of a rule, or nil if there is no rule named rule.
// The initial state is at index 0.
func (g *Grammar) DFA(rule string) []*dfa.State {
	return g.RuleToDFAs[rule]
}

// Reserved returns the reserved string for a literal value, if any transition
// of g uses it.
func (g *Grammar) Reserved(value string) (*dfa.ReservedString, bool) {
	r, ok := g.ReservedStrings[value]
	return r, ok
}

// Dump traces all rules of g at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar, start = %s ---------------------", g.Start)
	for _, rule := range g.rules {
		tracer().Debugf("rule %s:", rule)
		for i, state := range g.RuleToDFAs[rule] {
			tracer().Debugf("  [%d] %v", i, state)
			for _, nt := range sortedKeys(state.NonterminalArcs) {
				tracer().Debugf("      %s => %d", nt, dfa.Index(g.RuleToDFAs[rule], state.NonterminalArcs[nt]))
			}
			for _, key := range SortedKeys(state) {
				next := state.Transitions[key].Next
				tracer().Debugf("      %v -> %d", key, dfa.Index(g.RuleToDFAs[rule], next))
			}
		}
	}
	tracer().Debugf("%d reserved strings", len(g.ReservedStrings))
	tracer().Debugf("--------------------------------------------")
}

// --- Compiler -------------------------------------------------------------

// Minimizer reduces the states of a DFA. The initial state has to stay at
// index 0.
type Minimizer func([]*dfa.State) []*dfa.State

// Option configures the compilation of a grammar.
type Option func(c *compiler)

// WithMinimizer sets the DFA minimizer, overriding configuration key
// `pgen-minimizer`.
func WithMinimizer(m Minimizer) Option {
	return func(c *compiler) {
		c.minimize = m
	}
}

// compiler holds the context of one compilation run.
type compiler struct {
	ns       TokenNamespace
	reserved *ReservedStrings
	rules    map[string][]*dfa.State
	order    []string
	minimize Minimizer
}

func defaultMinimizer() Minimizer {
	switch m := gconf.GetString("pgen-minimizer"); m {
	case "partition":
		return dfa.MinimizePartition
	case "", "pairwise":
	default:
		tracer().Errorf("unknown minimizer %q, using pairwise minimization", m)
	}
	return dfa.Minimize
}

// Compile creates a grammar from the NFA fragments of its rules, given in
// source order. The first rule is the start rule. Terminal labels are resolved
// with ns.
//
// Compile returns an error for unknown token categories and malformed literals.
// If there is more than one error, all of them are combined into the error
// returned (see package go.uber.org/multierr). Fragments without states or
// without a rule name are a programming error and will cause a panic.
func Compile(fragments []nfa.Fragment, ns TokenNamespace, opts ...Option) (*Grammar, error) {
	if ns == nil {
		panic("grammar: token namespace must not be nil")
	}
	if len(fragments) == 0 {
		return nil, ErrNoRules
	}
	c := &compiler{
		ns:       ns,
		reserved: NewReservedStrings(),
		rules:    make(map[string][]*dfa.State, len(fragments)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.minimize == nil {
		c.minimize = defaultMinimizer()
	}
	var errs error
	for _, f := range fragments {
		if f.Start == nil || f.Finish == nil {
			panic("grammar: fragment without start or finish state")
		}
		name := f.Rule()
		if name == "" {
			panic("grammar: fragment without a rule name")
		}
		if _, exists := c.rules[name]; exists {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrDuplicateRule, name))
			continue
		}
		states := dfa.Build(f.Start, f.Finish)
		n := len(states)
		states = c.minimize(states)
		tracer().Debugf("rule %s: %d DFA states (%d before minimization)", name, len(states), n)
		dfa.Dump(states)
		c.rules[name] = states
		c.order = append(c.order, name)
	}
	// terminals may only be compiled after every rule has its DFA
	for _, name := range c.order {
		errs = multierr.Append(errs, c.compileTransitions(name))
	}
	if errs != nil {
		for _, err := range multierr.Errors(errs) {
			tracer().Errorf("%v", err)
		}
		if gconf.GetBool("panic-on-grammar-error") {
			panic(errs)
		}
		return nil, errs
	}
	for _, states := range c.rules {
		dfa.ReleaseNFAStates(states)
	}
	g := &Grammar{
		Start:           c.order[0],
		RuleToDFAs:      c.rules,
		ReservedStrings: c.reserved.Table,
		rules:           c.order,
	}
	return g, nil
}

// compileTransitions sorts the arcs of all states of a rule into non-terminal
// arcs and transitions.
func (c *compiler) compileTransitions(rule string) error {
	var errs error
	for _, state := range c.rules[rule] {
		state.NonterminalArcs = make(map[string]*dfa.State)
		state.Transitions = make(map[dfa.TransitionKey]*dfa.Plan)
		for _, label := range state.Labels() {
			next := state.Arcs[label]
			if _, isRule := c.rules[label]; isRule {
				state.NonterminalArcs[label] = next
				continue
			}
			key, err := c.makeTransition(label)
			if err != nil {
				errs = multierr.Append(errs, &LabelError{Rule: rule, Label: label, Cause: err})
				continue
			}
			state.Transitions[key] = &dfa.Plan{Next: next}
		}
	}
	return errs
}

// SortedKeys returns the transition keys of a state: token categories first,
// in ascending order, then reserved strings ordered by value.
func SortedKeys(state *dfa.State) []dfa.TransitionKey {
	keys := make([]dfa.TransitionKey, 0, len(state.Transitions))
	for key := range state.Transitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		if ki.IsReserved() != kj.IsReserved() {
			return !ki.IsReserved()
		}
		if ki.IsReserved() {
			return ki.Reserved.Value < kj.Reserved.Value
		}
		return ki.Category < kj.Category
	})
	return keys
}

func sortedKeys(arcs map[string]*dfa.State) []string {
	names := make([]string, 0, len(arcs))
	for name := range arcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
