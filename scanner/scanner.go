/*
Package scanner defines token categories and tokens for pgen.

Grammars refer to token categories by name, e.g. NAME or NUMBER. The grammar
compiler resolves these names using a Namespace, which maps names to
token categories of type pgen.TokType. Clients may create their own namespace
or use the default one, which has the token categories of a Python-like
tokenizer. The grammar notation itself is tokenized with the same categories.

An adapter for lexmachine, living in sub-package `lexmach`, is used to read
grammar descriptions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"sort"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.scanner")
}

// Token categories of the default namespace. 0 is not a valid category.
const (
	STRING pgen.TokType = iota + 1
	NUMBER
	NAME
	ERRORTOKEN
	NEWLINE
	INDENT
	DEDENT
	ERROR_DEDENT
	FSTRING_STRING
	FSTRING_START
	FSTRING_END
	OP
	ENDMARKER
)

var pythonTokenNames = []string{
	"STRING", "NUMBER", "NAME", "ERRORTOKEN", "NEWLINE", "INDENT", "DEDENT",
	"ERROR_DEDENT", "FSTRING_STRING", "FSTRING_START", "FSTRING_END", "OP", "ENDMARKER",
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() pgen.Token
	SetErrorHandler(func(error))
}

// --- Namespaces ------------------------------------------------------------

// Namespace maps names of token categories to token categories.
type Namespace map[string]pgen.TokType

// NewNamespace creates a namespace for a list of names. Token categories are
// numbered in order, starting with 1.
func NewNamespace(names ...string) Namespace {
	ns := make(Namespace, len(names))
	for i, name := range names {
		if _, dup := ns[name]; dup {
			panic(fmt.Sprintf("duplicate token category name: %s", name))
		}
		ns[name] = pgen.TokType(i + 1)
	}
	return ns
}

// PythonTokens returns the namespace of the token categories of a Python-like
// tokenizer: STRING, NUMBER, NAME, ERRORTOKEN, NEWLINE, INDENT, DEDENT,
// ERROR_DEDENT, FSTRING_STRING, FSTRING_START, FSTRING_END, OP, ENDMARKER.
func PythonTokens() Namespace {
	return NewNamespace(pythonTokenNames...)
}

// Lookup finds a token category by name.
func (ns Namespace) Lookup(name string) (pgen.TokType, bool) {
	t, ok := ns[name]
	return t, ok
}

// Name returns the name of a token category, or a numeric representation if
// no such category is defined. Name may be used as a pgen.TokTypeStringer.
func (ns Namespace) Name(t pgen.TokType) string {
	for name, tt := range ns {
		if tt == t {
			return name
		}
	}
	return fmt.Sprintf("<tok %d>", t)
}

// Names returns all category names, sorted by category.
func (ns Namespace) Names() []string {
	names := make([]string, 0, len(ns))
	for name := range ns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if ns[names[i]] == ns[names[j]] {
			return names[i] < names[j]
		}
		return ns[names[i]] < ns[names[j]]
	})
	return names
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the lexmachine scanner.
type DefaultToken struct {
	kind   pgen.TokType
	lexeme string
	Val    interface{}
	span   pgen.Span
	pos    pgen.Position
}

var _ pgen.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ pgen.TokType, lexeme string, span pgen.Span, pos pgen.Position) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		pos:    pos,
	}
}

func (t DefaultToken) TokType() pgen.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() pgen.Span {
	return t.span
}

// Position returns line and column of the start of the token.
func (t DefaultToken) Position() pgen.Position {
	return t.pos
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d %q @%s>", t.kind, t.lexeme, t.pos)
}

// Default error reporting function for scanners
func LogError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}
