package nfa

// Builder creates NFA states and combines them into fragments. Serial IDs of
// states are unique for all the states created by one builder, so a single
// builder should be used for all the rules of a grammar.
type Builder struct {
	rule   string
	serial int
}

// NewBuilder creates a builder for NFA fragments.
func NewBuilder() *Builder {
	return &Builder{}
}

// Rule sets the name of the rule new states will belong to.
// Returns the builder (for chaining).
func (b *Builder) Rule(name string) *Builder {
	b.rule = name
	return b
}

// CurrentRule returns the rule name new states will belong to.
func (b *Builder) CurrentRule() string {
	return b.rule
}

// NewState creates a new state for the current rule.
func (b *Builder) NewState() *State {
	if b.rule == "" {
		panic("nfa: state created without a rule name")
	}
	s := &State{ID: b.serial, Rule: b.rule}
	b.serial++
	return s
}

// Atom creates a fragment accepting label, where label is a terminal or
// non-terminal name:
//
//    start --label--> finish
//
func (b *Builder) Atom(label string) Fragment {
	a, z := b.NewState(), b.NewState()
	a.AddArc(z, label)
	return Fragment{Start: a, Finish: z}
}

// Sequence concatenates fragments by epsilon arcs from each finish state to the
// start state of the following fragment.
func (b *Builder) Sequence(frags ...Fragment) Fragment {
	if len(frags) == 0 {
		s := b.NewState()
		return Fragment{Start: s, Finish: s}
	}
	f := frags[0]
	for _, next := range frags[1:] {
		f.Finish.AddArc(next.Start, Epsilon)
		f.Finish = next.Finish
	}
	return f
}

// Alternative creates a fragment accepting any of frags. A single fragment is
// returned unchanged.
func (b *Builder) Alternative(frags ...Fragment) Fragment {
	if len(frags) == 1 {
		return frags[0]
	}
	aa, zz := b.NewState(), b.NewState()
	for _, f := range frags {
		aa.AddArc(f.Start, Epsilon)
		f.Finish.AddArc(zz, Epsilon)
	}
	return Fragment{Start: aa, Finish: zz}
}

// Optional makes f optional (brackets in EBNF). f is modified.
func (b *Builder) Optional(f Fragment) Fragment {
	f.Start.AddArc(f.Finish, Epsilon)
	return f
}

// Plus makes f repeatable one or more times. f is modified.
func (b *Builder) Plus(f Fragment) Fragment {
	f.Finish.AddArc(f.Start, Epsilon)
	return f
}

// Star makes f repeatable zero or more times. f is modified, and the resulting
// fragment starts and finishes at the start state of f.
func (b *Builder) Star(f Fragment) Fragment {
	f.Finish.AddArc(f.Start, Epsilon)
	return Fragment{Start: f.Start, Finish: f.Start}
}

// Group returns f unchanged: parentheses do not create states.
func (b *Builder) Group(f Fragment) Fragment {
	return f
}
