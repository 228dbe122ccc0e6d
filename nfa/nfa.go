/*
Package nfa provides the non-deterministic automata a grammar compiler starts from.

Every grammar rule is represented as an NFA fragment, i.e. a pair of a start
state and a finish state. States are connected by arcs, which are either
labeled with a terminal or non-terminal name, or unlabeled (epsilon arcs).
Fragments are usually created by a grammar front end (see package syntax),
using the combinators of Builder:

    b := nfa.NewBuilder().Rule("item")
    f := b.Alternative(b.Atom("'a'"), b.Atom("'b'"))  // item: 'a' | 'b'

Graphs may contain cycles, introduced by the repetition operators.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package nfa

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.nfa'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.nfa")
}

// Epsilon is the (empty) label of an unlabeled arc.
const Epsilon = ""

// State is a state of an NFA. States are compared by identity; ID is a serial
// number, unique within a Builder, and used for ordering sets of states.
// States created by hand may leave ID at zero.
type State struct {
	ID   int    // serial ID of this state
	Rule string // name of the grammar rule this state belongs to
	Arcs []Arc  // outgoing arcs, in order of creation
}

// Arc is a directed edge to a state. An empty label denotes an epsilon arc.
type Arc struct {
	Label string
	Next  *State
}

// IsEpsilon is true for unlabeled arcs.
func (a Arc) IsEpsilon() bool {
	return a.Label == Epsilon
}

// AddArc adds an arc to state next, labeled with label (which may be Epsilon).
func (s *State) AddArc(next *State, label string) {
	if next == nil {
		panic("nfa: arc to nil state")
	}
	s.Arcs = append(s.Arcs, Arc{Label: label, Next: next})
}

func (s *State) String() string {
	return fmt.Sprintf("<nfa %s #%d>", s.Rule, s.ID)
}

// Fragment is the NFA for a grammar rule or for a part of it.
type Fragment struct {
	Start  *State
	Finish *State
}

// Rule returns the name of the rule this fragment belongs to.
func (f Fragment) Rule() string {
	if f.Start == nil {
		return ""
	}
	return f.Start.Rule
}

// States returns all states reachable from the start state of f, in breadth-first
// order. The start state is the first entry.
func (f Fragment) States() []*State {
	if f.Start == nil {
		return nil
	}
	todo := arraylist.New()
	seen := map[*State]bool{f.Start: true}
	todo.Add(f.Start)
	for i := 0; i < todo.Size(); i++ { // todo grows while we're iterating
		x, _ := todo.Get(i)
		for _, arc := range x.(*State).Arcs {
			if !seen[arc.Next] {
				seen[arc.Next] = true
				todo.Add(arc.Next)
			}
		}
	}
	states := make([]*State, todo.Size())
	for i, x := range todo.Values() {
		states[i] = x.(*State)
	}
	return states
}

// Dump is a debugging helper. It traces the states of f at debug level.
func Dump(f Fragment) {
	states := f.States()
	index := make(map[*State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	tracer().Debugf("Dump of NFA for %s", f.Rule())
	for i, s := range states {
		if s == f.Finish {
			tracer().Debugf("  State %d (final)", i)
		} else {
			tracer().Debugf("  State %d", i)
		}
		for _, arc := range s.Arcs {
			if arc.IsEpsilon() {
				tracer().Debugf("    -> %d", index[arc.Next])
			} else {
				tracer().Debugf("    %s -> %d", arc.Label, index[arc.Next])
			}
		}
	}
}
