package tables

import (
	"fmt"
	"html"
	"io"
)

// WriteHTML exports the transition table of a rule in HTML-format. Columns
// are the keys and rules used by the states of the rule. If imgsrc is not
// empty, an image (e.g., a rendering of the GraphViz output) is included.
func (t *Tables) WriteHTML(w io.Writer, rule string, imgsrc string) error {
	r, ok := t.RuleIndex(rule)
	if !ok {
		return fmt.Errorf("tables: no rule %q", rule)
	}
	states := t.States[t.Rules[r].Initial : t.Rules[r].Initial+t.Rules[r].Size]
	var keys, rules []int
	usedKeys, usedRules := make(map[int]bool), make(map[int]bool)
	for _, s := range states {
		for _, e := range s.Transitions {
			usedKeys[e.Label] = true
		}
		for _, e := range s.Nonterminals {
			usedRules[e.Label] = true
		}
	}
	for k := range t.Keys {
		if usedKeys[k] {
			keys = append(keys, k)
		}
	}
	for k := range t.Rules {
		if usedRules[k] {
			rules = append(rules, k)
		}
	}
	ew := &errWriter{w: w}
	ew.printf("<html><body>\n")
	if imgsrc != "" {
		ew.printf("<img src=\"%s\"/><p>", html.EscapeString(imgsrc))
	}
	ew.printf("Rule %s, %d states<p>", html.EscapeString(rule), len(states))
	ew.printf("<table border=1 cellspacing=0 cellpadding=5>\n")
	ew.printf("<tr bgcolor=#cccccc><td></td>")
	for _, k := range keys {
		ew.printf("<td>%s</td>", html.EscapeString(t.Keys[k].Name))
	}
	for _, k := range rules {
		ew.printf("<td><i>%s</i></td>", html.EscapeString(t.Rules[k].Name))
	}
	ew.printf("</tr>\n")
	first := t.Rules[r].Initial
	for i, s := range states {
		n := first + i
		if s.Final {
			ew.printf("<tr><td><b>state %d</b></td>", i)
		} else {
			ew.printf("<tr><td>state %d</td>", i)
		}
		for _, k := range keys {
			ew.printf("<td>%s</td>", cell(t.Next(n, k), first))
		}
		for _, k := range rules {
			ew.printf("<td>%s</td>", cell(t.NextOnRule(n, k), first))
		}
		ew.printf("</tr>\n")
	}
	ew.printf("</table></body></html>\n")
	return ew.err
}

// cell is a short helper to stringify a table entry, relative to the
// initial state of the rule.
func cell(next int, first int) string {
	if next == NoState {
		return "&nbsp;"
	}
	return fmt.Sprintf("%d", next-first)
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
