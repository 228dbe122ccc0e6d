package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/pgen/dfa"
)

// makeTransition resolves a terminal label to a transition key.
func (c *compiler) makeTransition(label string) (dfa.TransitionKey, error) {
	first, _ := utf8.DecodeRuneInString(label)
	if unicode.IsLetter(first) { // a named token, e.g. NAME, NUMBER, STRING
		t, ok := c.ns.Lookup(label)
		if !ok {
			return dfa.TransitionKey{}, ErrUnknownToken
		}
		return dfa.TokenKey(t), nil
	}
	// either a keyword or an operator
	if first != '"' && first != '\'' {
		return dfa.TransitionKey{}, fmt.Errorf("%w: neither a name nor a quoted string", ErrMalformedLiteral)
	}
	if strings.HasPrefix(label, `"""`) || strings.HasPrefix(label, `'''`) {
		return dfa.TransitionKey{}, ErrTripleQuoted
	}
	value, err := Unquote(label)
	if err != nil {
		return dfa.TransitionKey{}, err
	}
	r, _ := c.reserved.ResolveOrDefine(value)
	return dfa.ReservedKey(r), nil
}

// Unquote returns the value of a literal in single or double quotes, with
// escape sequences resolved. Within either kind of quotes, \' and \" are
// valid escapes.
//
// Escapes follow Go syntax. Unlike Python string literals, octal escapes must
// have exactly three digits, and unknown escapes such as \d are rejected
// instead of being kept verbatim.
func Unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != lit[len(lit)-1] || (lit[0] != '"' && lit[0] != '\'') {
		return "", fmt.Errorf("%w: %s is not quoted", ErrMalformedLiteral, lit)
	}
	quote, body := lit[0], lit[1:len(lit)-1]
	// rewrite to a Go double-quoted string
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			if body[i+1] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte(c)
				b.WriteByte(body[i+1])
			}
			i++
		case c == quote:
			return "", fmt.Errorf("%w: unescaped quote in %s", ErrMalformedLiteral, lit)
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	value, err := strconv.Unquote(b.String())
	if err != nil {
		return "", fmt.Errorf("%w: cannot unescape %s", ErrMalformedLiteral, lit)
	}
	return value, nil
}
