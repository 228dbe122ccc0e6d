package ebnfx

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/pgen/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `
Expr   = Term { ( "+" | "-" ) Term } .
Term   = Factor { ( "*" | "/" ) Factor } .
Factor = NUMBER | NAME | "(" Expr ")" | "-" Factor .
`

func TestConvertOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.syntax")
	defer teardown()
	//
	fragments, err := Parse("expr.ebnf", strings.NewReader(exprGrammar), "Term")
	require.NoError(t, err)
	var rules []string
	for _, f := range fragments {
		rules = append(rules, f.Rule())
	}
	assert.Equal(t, []string{"Term", "Expr", "Factor"}, rules)
}

func TestCompileExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.syntax")
	defer teardown()
	//
	g, err := Compile(exprGrammar, "Expr", scanner.PythonTokens())
	require.NoError(t, err)
	assert.Equal(t, "Expr", g.Start)
	for _, op := range []string{"+", "-", "*", "/", "(", ")"} {
		_, ok := g.Reserved(op)
		assert.True(t, ok, "operator %q not interned", op)
	}
	expr := g.DFA("Expr")
	require.Len(t, expr, 3)
	require.Contains(t, expr[0].NonterminalArcs, "Term")
	s1 := expr[0].NonterminalArcs["Term"]
	assert.True(t, s1.IsFinal)
	plus, _ := g.Reserved("+")
	minus, _ := g.Reserved("-")
	assert.Same(t, s1.Transitions[dfa.ReservedKey(plus)].Next, s1.Transitions[dfa.ReservedKey(minus)].Next)
	f0 := g.DFA("Factor")[0]
	assert.Contains(t, f0.Transitions, dfa.TokenKey(scanner.NUMBER))
	assert.Contains(t, f0.Transitions, dfa.TokenKey(scanner.NAME))
}

func TestRepetitionAndEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.syntax")
	defer teardown()
	//
	g, err := Compile(`Item = { "a" } . Empty = .`, "Item", scanner.PythonTokens())
	require.NoError(t, err)
	item := g.DFA("Item")
	require.Len(t, item, 1)
	assert.True(t, item[0].IsFinal)
	empty := g.DFA("Empty")
	require.Len(t, empty, 1)
	assert.True(t, empty[0].IsFinal)
	assert.Empty(t, empty[0].Transitions)
}

func TestUnsupportedAndMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pgen.syntax")
	defer teardown()
	//
	_, err := Parse("digits.ebnf", strings.NewReader(`Digit = "0" … "9" .`), "Digit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRange))
	var serr *syntax.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Pos.Line)
	_, err = Parse("expr.ebnf", strings.NewReader(exprGrammar), "Statement")
	assert.True(t, errors.Is(err, ErrNoStartProduction))
	_, err = Parse("broken.ebnf", strings.NewReader(`Expr = Term`), "Expr")
	assert.Error(t, err)
}
