/*
Package ebnfx reads grammars in the EBNF notation of the Go language
specification and creates the NFA fragments for their productions.

    Production  = name "=" [ Expression ] "." .
    Expression  = Alternative { "|" Alternative } .
    Alternative = Term { Term } .
    Term        = name | token [ "…" token ] | Group | Option | Repetition .
    Group       = "(" Expression ")" .
    Option      = "[" Expression "]" .
    Repetition  = "{" Expression "}" .

Names of productions become non-terminal labels. Names without a production
are taken to be token categories, which have to be resolved by the token
namespace given to the grammar compiler. Tokens become literals
(reserved strings). Character ranges ("a" … "z") are not supported.

The start production is the first rule of the resulting grammar, all other
productions follow in order of their names.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ebnfx

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/pgen/nfa"
	"github.com/npillmayer/pgen/syntax"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/ebnf"
)

// tracer traces with key 'pgen.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.syntax")
}

// Errors for EBNF constructs which cannot be converted.
var (
	ErrNoStartProduction = errors.New("no start production")
	ErrRange             = errors.New("character ranges are not supported")
	ErrBadExpression     = errors.New("bad expression")
)

// Parse reads an EBNF grammar and converts it to NFA fragments, with the
// production named start first.
func Parse(filename string, src io.Reader, start string) ([]nfa.Fragment, error) {
	g, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return Convert(g, start)
}

// Compile reads an EBNF grammar and compiles it.
// See grammar.Compile for the options.
func Compile(text string, start string, ns grammar.TokenNamespace, opts ...grammar.Option) (*grammar.Grammar, error) {
	fragments, err := Parse("grammar", strings.NewReader(text), start)
	if err != nil {
		return nil, err
	}
	return grammar.Compile(fragments, ns, opts...)
}

// Convert creates NFA fragments for all productions of an EBNF grammar.
// The production named start will be the first fragment.
func Convert(g ebnf.Grammar, start string) ([]nfa.Fragment, error) {
	if _, ok := g[start]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoStartProduction, start)
	}
	names := make([]string, 0, len(g))
	for name := range g {
		if name != start {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{start}, names...)
	c := &converter{b: nfa.NewBuilder()}
	fragments := make([]nfa.Fragment, 0, len(names))
	for _, name := range names {
		c.b.Rule(name)
		f, err := c.convert(g[name].Expr)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("production %s: %d NFA states", name, len(f.States()))
		fragments = append(fragments, f)
	}
	return fragments, nil
}

type converter struct {
	b *nfa.Builder
}

func (c *converter) convert(x ebnf.Expression) (nfa.Fragment, error) {
	switch x := x.(type) {
	case nil: // empty production
		return c.b.Sequence(), nil
	case ebnf.Alternative:
		frags, err := c.convertAll(x)
		if err != nil {
			return nfa.Fragment{}, err
		}
		return c.b.Alternative(frags...), nil
	case ebnf.Sequence:
		frags, err := c.convertAll(x)
		if err != nil {
			return nfa.Fragment{}, err
		}
		return c.b.Sequence(frags...), nil
	case *ebnf.Name:
		return c.b.Atom(x.String), nil
	case *ebnf.Token:
		return c.b.Atom(strconv.Quote(x.String)), nil
	case *ebnf.Group:
		f, err := c.convert(x.Body)
		return c.b.Group(f), err
	case *ebnf.Option:
		f, err := c.convert(x.Body)
		if err != nil {
			return f, err
		}
		return c.b.Optional(f), nil
	case *ebnf.Repetition:
		f, err := c.convert(x.Body)
		if err != nil {
			return f, err
		}
		return c.b.Star(f), nil
	case *ebnf.Range:
		return nfa.Fragment{}, exprError(x, x.Begin.String+"…"+x.End.String, ErrRange)
	case *ebnf.Bad:
		return nfa.Fragment{}, exprError(x, x.Error, ErrBadExpression)
	}
	panic(fmt.Sprintf("ebnfx: unknown expression type %T", x))
}

func (c *converter) convertAll(xs []ebnf.Expression) ([]nfa.Fragment, error) {
	frags := make([]nfa.Fragment, 0, len(xs))
	for _, x := range xs {
		f, err := c.convert(x)
		if err != nil {
			return nil, err
		}
		frags = append(frags, f)
	}
	return frags, nil
}

func exprError(x ebnf.Expression, lexeme string, cause error) error {
	pos := x.Pos()
	return &syntax.Error{
		Pos:    pgen.Position{Line: pos.Line, Column: pos.Column},
		Lexeme: lexeme,
		Cause:  cause,
	}
}
