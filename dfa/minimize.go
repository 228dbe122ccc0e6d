package dfa

// Minimize unifies equal states (see State.Equals) until there are no more
// equal states left. Arcs pointing to a removed state are redirected to the
// state it has been unified with. The initial state stays at index 0.
//
// Minimize works on states in place and returns the shortened slice.
func Minimize(states []*State) []*State {
	if len(states) == 0 {
		return states
	}
	rule, before := states[0].Rule, len(states)
	for merged := true; merged; {
		merged = false
	scan:
		for i := 0; i < len(states); i++ {
			for j := i + 1; j < len(states); j++ {
				if !states[i].Equals(states[j]) {
					continue
				}
				tracer().Debugf("unify states %d and %d of rule %s", i, j, rule)
				old := states[j]
				states = append(states[:j], states[j+1:]...)
				for _, s := range states {
					s.unifyState(old, states[i])
				}
				merged = true
				break scan // a merge may create new equalities
			}
		}
	}
	tracer().Infof("rule %s: %d DFA states, %d after minimization", rule, before, len(states))
	return states
}
