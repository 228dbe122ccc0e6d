package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/nfa"
	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func compile(t *testing.T, opts []Option, rules ...func(*nfa.Builder) nfa.Fragment) *Grammar {
	b := nfa.NewBuilder()
	var frags []nfa.Fragment
	for _, r := range rules {
		frags = append(frags, r(b))
	}
	g, err := Compile(frags, scanner.PythonTokens(), opts...)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func reservedNext(t *testing.T, g *Grammar, s *dfa.State, value string) *dfa.State {
	r, ok := g.Reserved(value)
	require.True(t, ok, "reserved string %q not interned", value)
	plan, ok := s.Transitions[dfa.ReservedKey(r)]
	require.True(t, ok, "no transition for %q in %v", value, s)
	return plan.Next
}

func TestCompileSingleLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	g := compile(t, nil, func(b *nfa.Builder) nfa.Fragment {
		return b.Rule("item").Atom("'a'")
	})
	assert.Equal(t, "item", g.Start)
	states := g.DFA("item")
	require.Len(t, states, 2)
	assert.False(t, states[0].IsFinal)
	assert.True(t, states[1].IsFinal)
	assert.Same(t, states[1], reservedNext(t, g, states[0], "a"))
	assert.Len(t, g.ReservedStrings, 1)
	assert.Empty(t, states[0].NonterminalArcs)
	assert.Empty(t, states[1].Transitions)
	g.Dump()
}

func TestCompileAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	item := func(b *nfa.Builder) nfa.Fragment {
		b.Rule("item")
		return b.Alternative(b.Atom("'a'"), b.Atom("'b'"))
	}
	for name, m := range map[string]Minimizer{
		"pairwise":  dfa.Minimize,
		"partition": dfa.MinimizePartition,
	} {
		t.Run(name, func(t *testing.T) {
			g := compile(t, []Option{WithMinimizer(m)}, item)
			states := g.DFA("item")
			require.Len(t, states, 2)
			assert.Same(t, states[1], reservedNext(t, g, states[0], "a"))
			assert.Same(t, states[1], reservedNext(t, g, states[0], "b"))
			assert.True(t, states[1].IsFinal)
		})
	}
}

func TestCompileStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	g := compile(t, nil, func(b *nfa.Builder) nfa.Fragment {
		return b.Star(b.Rule("item").Atom("'a'"))
	})
	states := g.DFA("item")
	require.Len(t, states, 1)
	assert.True(t, states[0].IsFinal)
	assert.Same(t, states[0], reservedNext(t, g, states[0], "a"))
}

func TestLiteralsAreInternedAcrossRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	g := compile(t, nil,
		func(b *nfa.Builder) nfa.Fragment { // stmt: 'if' NAME
			b.Rule("stmt")
			return b.Sequence(b.Atom("'if'"), b.Atom("NAME"))
		},
		func(b *nfa.Builder) nfa.Fragment { // cond: "if" NUMBER
			b.Rule("cond")
			return b.Sequence(b.Atom(`"if"`), b.Atom("NUMBER"))
		},
	)
	r, ok := g.Reserved("if")
	require.True(t, ok)
	assert.Len(t, g.ReservedStrings, 1)
	for _, rule := range []string{"stmt", "cond"} {
		plan, ok := g.DFA(rule)[0].Transitions[dfa.ReservedKey(r)]
		require.True(t, ok, "rule %s has no transition for 'if'", rule)
		assert.NotNil(t, plan.Next)
	}
	assert.Equal(t, []string{"stmt", "cond"}, g.Rules())
}

func TestNonterminalArcs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	g := compile(t, nil,
		func(b *nfa.Builder) nfa.Fragment { // item: NAME other
			b.Rule("item")
			return b.Sequence(b.Atom("NAME"), b.Atom("other"))
		},
		func(b *nfa.Builder) nfa.Fragment { // other: '.'
			return b.Rule("other").Atom("'.'")
		},
	)
	states := g.DFA("item")
	require.Len(t, states, 3)
	plan, ok := states[0].Transitions[dfa.TokenKey(scanner.NAME)]
	require.True(t, ok)
	s1 := plan.Next
	assert.Empty(t, s1.Transitions)
	require.Contains(t, s1.NonterminalArcs, "other")
	assert.True(t, s1.NonterminalArcs["other"].IsFinal)
	assert.NotContains(t, g.ReservedStrings, "other")
}

func TestForwardAndRecursiveReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	g := compile(t, nil,
		func(b *nfa.Builder) nfa.Fragment { // list: '[' [elems] ']'
			b.Rule("list")
			return b.Sequence(b.Atom("'['"), b.Optional(b.Atom("elems")), b.Atom("']'"))
		},
		func(b *nfa.Builder) nfa.Fragment { // elems: (NUMBER | list) [',' elems]
			b.Rule("elems")
			head := b.Alternative(b.Atom("NUMBER"), b.Atom("list"))
			return b.Sequence(head, b.Optional(b.Sequence(b.Atom("','"), b.Atom("elems"))))
		},
	)
	assert.Equal(t, "list", g.Start)
	e0 := g.DFA("elems")[0]
	assert.Contains(t, e0.NonterminalArcs, "list")
	assert.Contains(t, e0.Transitions, dfa.TokenKey(scanner.NUMBER))
	for _, v := range []string{"[", "]", ","} {
		_, ok := g.Reserved(v)
		assert.True(t, ok, "%q not interned", v)
	}
}

func TestLabelErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	tests := []struct {
		label string
		err   error
	}{
		{"FOO", ErrUnknownToken},
		{"'''if'''", ErrTripleQuoted},
		{`"""if"""`, ErrTripleQuoted},
		{"'if", ErrMalformedLiteral},
		{"_x", ErrMalformedLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			b := nfa.NewBuilder()
			f := b.Rule("item").Atom(tt.label)
			g, err := Compile([]nfa.Fragment{f}, scanner.PythonTokens())
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "expected %v, got %v", tt.err, err)
			var lerr *LabelError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, "item", lerr.Rule)
			assert.Equal(t, tt.label, lerr.Label)
		})
	}
}

func TestAllLabelErrorsAreReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	b := nfa.NewBuilder()
	b.Rule("item")
	f1 := b.Sequence(b.Atom("FOO"), b.Atom("'ok'"))
	f2 := b.Rule("other").Atom("'''x'''")
	g, err := Compile([]nfa.Fragment{f1, f2}, scanner.PythonTokens())
	assert.Nil(t, g)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], ErrUnknownToken))
	assert.True(t, errors.Is(errs[1], ErrTripleQuoted))
}

func TestNoRulesAndDuplicateRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	_, err := Compile(nil, scanner.PythonTokens())
	assert.True(t, errors.Is(err, ErrNoRules))
	b := nfa.NewBuilder()
	f1 := b.Rule("item").Atom("NAME")
	f2 := b.Rule("item").Atom("NUMBER")
	_, err = Compile([]nfa.Fragment{f1, f2}, scanner.PythonTokens())
	require.Error(t, err)
	assert.True(t, errors.Is(multierr.Errors(err)[0], ErrDuplicateRule))
}

func TestFragmentWithoutRulePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.grammar")
	defer teardown()
	//
	s, z := &nfa.State{}, &nfa.State{ID: 1}
	s.AddArc(z, "NAME")
	assert.Panics(t, func() {
		_, _ = Compile([]nfa.Fragment{{Start: s, Finish: z}}, scanner.PythonTokens())
	})
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		lit, value string
	}{
		{`'a'`, "a"},
		{`"+="`, "+="},
		{`'\n'`, "\n"},
		{`'it\'s'`, "it's"},
		{`"it\'s"`, "it's"},
		{`"say \"hi\""`, `say "hi"`},
		{`'"'`, `"`},
		{`"'"`, `'`},
		{`'\\'`, `\`},
		{`''`, ""},
		{`'\101'`, "A"},
	}
	for _, tt := range tests {
		v, err := Unquote(tt.lit)
		if assert.NoError(t, err, tt.lit) {
			assert.Equal(t, tt.value, v, tt.lit)
		}
	}
	for _, lit := range []string{`'a`, `a'`, `'a"`, `'a'b'`, `'\q'`, `'\d'`, `'\1'`, `'a\'`, `x`, `'`} {
		_, err := Unquote(lit)
		assert.True(t, errors.Is(err, ErrMalformedLiteral), "expected %s to be malformed", lit)
	}
}
