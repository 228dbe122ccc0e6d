/*
Package syntax reads grammars in pgen notation and creates the NFA fragments
for their rules.

The notation is a variant of EBNF, used for example for the grammar of Python:

    # comments start with '#'
    file_input: (NEWLINE | stmt)* ENDMARKER
    if_stmt: 'if' test ':' suite ('elif' test ':' suite)* ['else' ':' suite]
    arglist: argument (',' argument)*  [',']

A rule is a name, a colon and a right-hand side on a single line. Inside
parentheses and brackets a right-hand side may span more than one line.
Items are names (of rules or of token categories), quoted strings
(keywords and operators), groups in parentheses, optional parts in brackets,
and repetitions with '*' (zero or more) and '+' (one or more). Alternatives
are separated by '|'.

Parse returns the fragments of all rules, in source order. Compile parses
and compiles a grammar in one step:

    g, err := syntax.Compile(text, scanner.PythonTokens())

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.syntax")
}
