/*
Package grammar assembles compiled grammars from the NFAs of grammar rules.

Compiling a Grammar

Clients hand over the NFA fragments of all the rules of a grammar, in
source order, together with a namespace for token categories:

    g, err := grammar.Compile(fragments, scanner.PythonTokens())

Compile will construct and minimize a DFA for every rule (see package dfa).
The first rule is the start rule of the grammar. After all DFAs exist,
Compile walks every arc of every DFA state. Arcs labeled with the name of a
rule are collected as non-terminal arcs. All other labels are terminals:
a bare name (e.g. NAME) refers to a token category, a quoted string
(e.g. 'if' or "+=") is a keyword or an operator. Literals are interned as
reserved strings: all transitions for the same literal, even in different
rules, use the same dfa.ReservedString.

Errors in terminal labels (unknown token categories, malformed literals) are
fatal: Compile collects all of them and returns no grammar. Setting the
configuration flag `panic-on-grammar-error` turns these errors into a panic.
Configuration key `pgen-minimizer` selects the minimizer ("pairwise", the
default, or "partition"); option WithMinimizer takes precedence.

A compiled grammar is immutable and may be shared between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.grammar")
}
