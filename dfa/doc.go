/*
Package dfa turns the NFA of a grammar rule into a minimized deterministic
finite automaton.

Construction

To turn an NFA into a DFA, we define the states of the DFA to correspond to
*sets* of states of the NFA (powerset construction). Build computes the
epsilon-closure of the rule's start state, which becomes DFA state 0, and
then follows the labeled arcs of every state's NFA set, label by label,
until no new sets of NFA states are discovered:

    states := dfa.Build(fragment.Start, fragment.Finish)

Minimization

Minimize repeatedly looks for two states that are final alike and have the
same set of arcs (same labels pointing to the same target states) and unifies
them, until nothing changes any more:

    states = dfa.Minimize(states)

Targets are compared by identity, not recursively, thus comparison terminates
for rules which loop back to a previous state. The result is not guaranteed to
be the smallest possible DFA. MinimizePartition is an alternative using
partition refinement.

After minimization, states are subject to the compilation of transitions in
package grammar, which will fill in NonterminalArcs and Transitions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.dfa")
}
