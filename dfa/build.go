package dfa

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/pgen/nfa"
)

// === Closure and Powerset Construction =====================================

// addClosure adds an NFA state and everything reachable from it by epsilon arcs
// to set. States already in set are not followed again, which guards against
// cycles.
func addClosure(state *nfa.State, set *treeset.Set) {
	if set.Contains(state) {
		return
	}
	set.Add(state)
	for _, arc := range state.Arcs {
		if arc.IsEpsilon() {
			addClosure(arc.Next, set)
		}
	}
}

// Closure returns the epsilon-closure of a set of NFA states, ordered by serial ID.
func Closure(states ...*nfa.State) []*nfa.State {
	set := newNFAOrder().newSet()
	for _, s := range states {
		addClosure(s, set)
	}
	return nfaStates(set)
}

// Build constructs the DFA for an NFA fragment, given by its start and finish
// state. The first state of the result is the DFA's initial state, all the
// others appear in order of discovery.
//
// Build will not minimize the DFA; see Minimize.
func Build(start, finish *nfa.State) []*State {
	if start == nil || finish == nil {
		panic("dfa: NFA fragment without start or finish state")
	}
	tracer().Debugf("=== build DFA for rule %s ====================", start.Rule)
	order := newNFAOrder()
	base := order.newSet()
	addClosure(start, base)
	states := []*State{newState(start.Rule, base, finish)}
	for i := 0; i < len(states); i++ { // NB states grows while we're iterating
		state := states[i]
		// Find state transitions and store them in arcs, grouped by label.
		arcs := treemap.NewWithStringComparator()
		it := state.nfaSet.Iterator()
		for it.Next() {
			for _, arc := range it.Value().(*nfa.State).Arcs {
				if arc.IsEpsilon() { // already part of the closure
					continue
				}
				set, found := arcs.Get(arc.Label)
				if !found {
					set = order.newSet()
					arcs.Put(arc.Label, set)
				}
				addClosure(arc.Next, set.(*treeset.Set))
			}
		}
		// All epsilon arcs are eliminated by now and the transitions are properly
		// grouped; we just have to find or create the target states.
		ait := arcs.Iterator()
		for ait.Next() {
			label := ait.Key().(string)
			nfaSet := ait.Value().(*treeset.Set)
			next := findStateByNFASet(states, nfaSet)
			if next == nil {
				next = newState(start.Rule, nfaSet, finish)
				states = append(states, next)
				tracer().Debugf("new state %d = %s", len(states)-1, nfaSetString(nfaSet))
			}
			state.AddArc(next, label)
			tracer().Debugf("state %d --%s--> %d", i, label, Index(states, next))
		}
	}
	return states
}

// Find a DFA state by the set of NFA states it stands for.
func findStateByNFASet(states []*State, set *treeset.Set) *State {
	for _, s := range states {
		if sameNFASet(s.nfaSet, set) {
			return s
		}
	}
	return nil
}
