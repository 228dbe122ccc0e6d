package dfa

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/nfa"
)

// State is a state of a rule's DFA. It stands for a set of NFA states.
//
// Arcs maps terminal and non-terminal labels to successor states, as created
// by Build and Minimize. NonterminalArcs and Transitions are views on Arcs,
// filled in by the grammar compiler: NonterminalArcs holds arcs labeled with the
// name of a grammar rule, Transitions holds the compiled terminal arcs.
// Clients must treat all of them as read-only.
type State struct {
	Rule            string                  // the rule this state belongs to
	IsFinal         bool                    // is this an accepting state?
	Arcs            map[string]*State       // label → next state
	NonterminalArcs map[string]*State       // rule name → next state
	Transitions     map[TransitionKey]*Plan // compiled terminal arcs
	labels          []string                // labels of Arcs, in order of insertion
	nfaSet          *treeset.Set            // NFA states this state stands for
}

// Create a state for a set of NFA states.
func newState(rule string, nfaSet *treeset.Set, finish *nfa.State) *State {
	if nfaSet == nil || nfaSet.Empty() {
		panic("dfa: state for empty set of NFA states")
	}
	return &State{
		Rule:            rule,
		IsFinal:         nfaSet.Contains(finish),
		Arcs:            make(map[string]*State),
		NonterminalArcs: make(map[string]*State),
		Transitions:     make(map[TransitionKey]*Plan),
		nfaSet:          nfaSet,
	}
}

// AddArc adds an arc to state next. Labels are unique per state; adding a label
// twice is a violation of the DFA property and will panic.
func (s *State) AddArc(next *State, label string) {
	if next == nil {
		panic("dfa: arc to nil state")
	}
	if label == nfa.Epsilon {
		panic("dfa: epsilon arc in DFA")
	}
	if _, exists := s.Arcs[label]; exists {
		panic(fmt.Sprintf("dfa: duplicate arc %q in state of rule %s", label, s.Rule))
	}
	s.Arcs[label] = next
	s.labels = append(s.labels, label)
}

// Labels returns the labels of all arcs of s, in order of insertion.
func (s *State) Labels() []string {
	return s.labels
}

// NFAStates returns the NFA states s stands for, ordered by serial ID.
// The set is released by ReleaseNFAStates.
func (s *State) NFAStates() []*nfa.State {
	return nfaStates(s.nfaSet)
}

// ReleaseNFAStates drops the NFA states of all states, which are no longer
// needed after minimization.
func ReleaseNFAStates(states []*State) {
	for _, s := range states {
		s.nfaSet = nil
	}
}

// unifyState redirects every arc pointing to old to new.
func (s *State) unifyState(old, new *State) {
	for label, next := range s.Arcs {
		if next == old {
			s.Arcs[label] = new
		}
	}
}

// Equals compares two states, ignoring the sets of NFA states. States are equal
// if both are final or non-final, and if they have arcs with identical labels
// pointing to the very same states. We cannot compare target states recursively,
// as arcs may form cycles.
func (s *State) Equals(other *State) bool {
	if other == nil {
		panic("dfa: comparing state to nil")
	}
	if s.IsFinal != other.IsFinal {
		return false
	}
	if len(s.Arcs) != len(other.Arcs) {
		return false
	}
	for label, next := range s.Arcs {
		if other.Arcs[label] != next {
			return false
		}
	}
	return true
}

func (s *State) String() string {
	return fmt.Sprintf("<DFAState: %s is_final=%v>", s.Rule, s.IsFinal)
}

// Index returns the position of state s in states, or -1.
func Index(states []*State, s *State) int {
	for i, x := range states {
		if x == s {
			return i
		}
	}
	return -1
}

// --- Reserved strings and plans --------------------------------------------

// ReservedString is a keyword or operator spelling of a grammar. Reserved strings
// are interned by the grammar compiler: there is exactly one ReservedString
// per value and grammar, thus they may be compared by identity.
type ReservedString struct {
	Value string
}

func (r *ReservedString) String() string {
	return fmt.Sprintf("ReservedString(%s)", r.Value)
}

// TransitionKey is the key for a compiled terminal transition. It either refers
// to a token category or to a reserved string (Reserved is non-nil).
type TransitionKey struct {
	Category pgen.TokType
	Reserved *ReservedString
}

// TokenKey creates a transition key for a token category.
func TokenKey(t pgen.TokType) TransitionKey {
	return TransitionKey{Category: t}
}

// ReservedKey creates a transition key for a reserved string.
func ReservedKey(r *ReservedString) TransitionKey {
	if r == nil {
		panic("dfa: transition key for nil reserved string")
	}
	return TransitionKey{Reserved: r}
}

// IsReserved is true if k refers to a reserved string.
func (k TransitionKey) IsReserved() bool {
	return k.Reserved != nil
}

func (k TransitionKey) String() string {
	if k.Reserved != nil {
		return k.Reserved.String()
	}
	return fmt.Sprintf("TokType(%d)", k.Category)
}

// Plan is the instruction for a downstream parser when the current token
// matches a transition key: move to state Next.
type Plan struct {
	Next *State
}

func (p *Plan) String() string {
	return fmt.Sprintf("<Plan %v>", p.Next)
}

// --- Sets of NFA states ----------------------------------------------------

// nfaOrder orders NFA states by serial ID. States with the same ID are ordered
// by first encounter, thus distinct states never compare as equal, even if a
// client did not bother to number them.
type nfaOrder struct {
	rank map[*nfa.State]int
}

func newNFAOrder() *nfaOrder {
	return &nfaOrder{rank: make(map[*nfa.State]int)}
}

func (o *nfaOrder) rankOf(n *nfa.State) int {
	r, ok := o.rank[n]
	if !ok {
		r = len(o.rank)
		o.rank[n] = r
	}
	return r
}

func (o *nfaOrder) compare(s1, s2 interface{}) int {
	n1 := s1.(*nfa.State)
	n2 := s2.(*nfa.State)
	if c := utils.IntComparator(n1.ID, n2.ID); c != 0 || n1 == n2 {
		return c
	}
	return utils.IntComparator(o.rankOf(n1), o.rankOf(n2))
}

func (o *nfaOrder) newSet() *treeset.Set {
	return treeset.NewWith(o.compare)
}

func sameNFASet(a, b *treeset.Set) bool {
	return a.Size() == b.Size() && a.Contains(b.Values()...)
}

func nfaStates(set *treeset.Set) []*nfa.State {
	if set == nil {
		return nil
	}
	r := make([]*nfa.State, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		r = append(r, it.Value().(*nfa.State))
	}
	return r
}

func nfaSetString(set *treeset.Set) string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range nfaStates(set) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", n.ID)
	}
	b.WriteString("}")
	return b.String()
}
