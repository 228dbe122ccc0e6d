package syntax

import (
	"fmt"

	"github.com/npillmayer/pgen"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/pgen/nfa"
	"github.com/npillmayer/pgen/scanner"
)

// Parse reads a grammar in pgen notation and returns the NFA fragments of its
// rules, in source order. Parsing stops at the first syntax error, which is
// returned as an *Error.
//
// Parse does not check if names refer to rules or token categories. This is
// done by the grammar compiler.
func Parse(text string) ([]nfa.Fragment, error) {
	rules, err := ParseRules(text)
	if err != nil {
		return nil, err
	}
	fragments := make([]nfa.Fragment, len(rules))
	for i, r := range rules {
		fragments[i] = r.Fragment
	}
	return fragments, nil
}

// Rule is a rule of a grammar source, as returned by ParseRules.
type Rule struct {
	Name     string
	Span     pgen.Span // byte positions of the rule's text, without the final newline
	Fragment nfa.Fragment
}

// Text returns the source text of rule r, given the source of the grammar.
func (r Rule) Text(source string) string {
	return source[r.Span.From():r.Span.To()]
}

// ParseRules is like Parse, but returns the rules together with their
// positions in text.
func ParseRules(text string) ([]Rule, error) {
	lm, err := grammarLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(text)
	if err != nil {
		return nil, err
	}
	p := &parser{sc: sc, b: nfa.NewBuilder()}
	sc.SetErrorHandler(func(e error) {
		tracer().Errorf("scanner: %v", e)
	})
	p.tok = sc.NextToken()
	return p.parseFile()
}

// Compile parses a grammar in pgen notation and compiles it.
// See grammar.Compile for the options.
func Compile(text string, ns grammar.TokenNamespace, opts ...grammar.Option) (*grammar.Grammar, error) {
	fragments, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return grammar.Compile(fragments, ns, opts...)
}

// parser is a recursive descent parser with a single token lookahead.
type parser struct {
	sc    scanner.Tokenizer
	tok   pgen.Token // lookahead
	depth int        // nesting of parentheses and brackets
	end   uint64     // end position of the last token consumed
	b     *nfa.Builder
}

// advance consumes the lookahead token. Newlines inside parentheses and
// brackets are skipped.
func (p *parser) advance() {
	if p.tok.TokType() == scanner.OP {
		switch p.tok.Lexeme() {
		case "(", "[":
			p.depth++
		case ")", "]":
			if p.depth > 0 {
				p.depth--
			}
		}
	}
	p.end = p.tok.Span().To()
	p.tok = p.sc.NextToken()
	for p.depth > 0 && p.tok.TokType() == scanner.NEWLINE {
		p.tok = p.sc.NextToken()
	}
}

func (p *parser) isOp(op string) bool {
	return p.tok.TokType() == scanner.OP && p.tok.Lexeme() == op
}

func (p *parser) expectOp(op string) error {
	if !p.isOp(op) {
		return p.errorf("expected %q", op)
	}
	p.advance()
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	e := &Error{
		Lexeme: p.tok.Lexeme(),
		Detail: fmt.Sprintf(format, args...),
		Cause:  ErrUnexpectedToken,
	}
	if pos, ok := p.tok.(interface{ Position() pgen.Position }); ok {
		e.Pos = pos.Position()
	}
	switch p.tok.TokType() {
	case scanner.ERRORTOKEN:
		e.Cause = ErrIllegalCharacter
	case scanner.NEWLINE:
		e.Lexeme = "\n"
	case scanner.ENDMARKER:
		e.Lexeme = "<EOF>"
	}
	tracer().Errorf("%v", e)
	return e
}

// file: (NEWLINE | rule)* ENDMARKER
func (p *parser) parseFile() ([]Rule, error) {
	var rules []Rule
	for {
		switch p.tok.TokType() {
		case scanner.ENDMARKER:
			tracer().Debugf("parsed %d rules", len(rules))
			return rules, nil
		case scanner.NEWLINE:
			p.advance()
		case scanner.NAME:
			r, err := p.parseRule()
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		default:
			return nil, p.errorf("expected rule name")
		}
	}
}

// rule: NAME ':' rhs NEWLINE
func (p *parser) parseRule() (Rule, error) {
	r := Rule{Name: p.tok.Lexeme()}
	from := p.tok.Span().From()
	p.advance()
	if err := p.expectOp(":"); err != nil {
		return r, err
	}
	p.b.Rule(r.Name)
	f, err := p.parseRHS()
	if err != nil {
		return r, err
	}
	r.Span = pgen.Span{from, p.end}
	switch p.tok.TokType() {
	case scanner.NEWLINE:
		p.advance()
	case scanner.ENDMARKER: // last line without newline
	default:
		return r, p.errorf("expected end of rule %s", r.Name)
	}
	tracer().Debugf("rule %s at %v", r.Name, r.Span)
	nfa.Dump(f)
	r.Fragment = f
	return r, nil
}

// rhs: items ('|' items)*
func (p *parser) parseRHS() (nfa.Fragment, error) {
	f, err := p.parseItems()
	if err != nil {
		return f, err
	}
	alternatives := []nfa.Fragment{f}
	for p.isOp("|") {
		p.advance()
		if f, err = p.parseItems(); err != nil {
			return f, err
		}
		alternatives = append(alternatives, f)
	}
	return p.b.Alternative(alternatives...), nil
}

// items: item+
func (p *parser) parseItems() (nfa.Fragment, error) {
	var items []nfa.Fragment
	for p.startsItem() {
		f, err := p.parseItem()
		if err != nil {
			return f, err
		}
		items = append(items, f)
	}
	if len(items) == 0 {
		return nfa.Fragment{}, p.errorf("expected name, string, '(' or '['")
	}
	return p.b.Sequence(items...), nil
}

func (p *parser) startsItem() bool {
	switch p.tok.TokType() {
	case scanner.NAME, scanner.STRING:
		return true
	}
	return p.isOp("(") || p.isOp("[")
}

// item: '[' rhs ']' | atom ['+' | '*']
func (p *parser) parseItem() (nfa.Fragment, error) {
	if p.isOp("[") {
		p.advance()
		f, err := p.parseRHS()
		if err != nil {
			return f, err
		}
		if err = p.expectOp("]"); err != nil {
			return f, err
		}
		return p.b.Optional(f), nil
	}
	f, err := p.parseAtom()
	if err != nil {
		return f, err
	}
	switch {
	case p.isOp("+"):
		p.advance()
		return p.b.Plus(f), nil
	case p.isOp("*"):
		p.advance()
		return p.b.Star(f), nil
	}
	return f, nil
}

// atom: '(' rhs ')' | NAME | STRING
func (p *parser) parseAtom() (nfa.Fragment, error) {
	if p.isOp("(") {
		p.advance()
		f, err := p.parseRHS()
		if err != nil {
			return f, err
		}
		if err = p.expectOp(")"); err != nil {
			return f, err
		}
		return p.b.Group(f), nil
	}
	switch p.tok.TokType() {
	case scanner.NAME, scanner.STRING:
		f := p.b.Atom(p.tok.Lexeme())
		p.advance()
		return f, nil
	}
	return nfa.Fragment{}, p.errorf("expected name, string or '('")
}
