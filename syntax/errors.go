package syntax

import (
	"errors"
	"fmt"

	"github.com/npillmayer/pgen"
)

// Causes of syntax errors.
var (
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrIllegalCharacter = errors.New("illegal character")
)

// Error is a syntax error in a grammar description.
type Error struct {
	Pos    pgen.Position // position of the offending token
	Lexeme string        // the offending token
	Detail string        // what the parser expected
	Cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %v %q", e.Pos, e.Cause, e.Lexeme)
	if e.Detail != "" {
		msg += ", " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
