package dfa

import (
	"fmt"
	"io"
)

// Dump is a debugging helper. It traces the states of a rule's DFA at debug level.
func Dump(states []*State) {
	if len(states) == 0 {
		return
	}
	tracer().Debugf("Dump of DFA for %s", states[0].Rule)
	for i, state := range states {
		if state.IsFinal {
			tracer().Debugf("  State %d (final)", i)
		} else {
			tracer().Debugf("  State %d", i)
		}
		for _, label := range state.Labels() {
			tracer().Debugf("    %s -> %d", label, Index(states, state.Arcs[label]))
		}
	}
}

// ToGraphViz exports the DFA of a rule to the Graphviz Dot format.
func ToGraphViz(w io.Writer, states []*State) error {
	if len(states) == 0 {
		return fmt.Errorf("cannot export empty DFA")
	}
	if _, err := fmt.Fprintf(w, `digraph %q {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`, states[0].Rule); err != nil {
		return err
	}
	for i, s := range states {
		content := s.Rule
		if s.nfaSet != nil {
			content = nfaSetString(s.nfaSet)
		}
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			i, nodecolor(s), i, content)
	}
	for i, s := range states {
		for _, label := range s.Labels() {
			fmt.Fprintf(w, "s%03d -> s%03d [label=%q]\n", i, Index(states, s.Arcs[label]), label)
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func nodecolor(state *State) string {
	if state.IsFinal {
		return "lightgray"
	}
	return "white"
}
