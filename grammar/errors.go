package grammar

import (
	"errors"
	"fmt"
)

// Errors reported by Compile. Errors in terminal labels are wrapped in a
// LabelError.
var (
	ErrNoRules          = errors.New("a grammar needs at least one rule")
	ErrDuplicateRule    = errors.New("duplicate rule")
	ErrUnknownToken     = errors.New("unknown token category")
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrTripleQuoted     = errors.New("triple-quoted literals are not supported")
)

// LabelError is an error for a terminal label of a rule.
type LabelError struct {
	Rule  string // rule containing the label
	Label string // the label as found in the grammar
	Cause error
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("rule %s: label %s: %v", e.Rule, e.Label, e.Cause)
}

func (e *LabelError) Unwrap() error {
	return e.Cause
}
