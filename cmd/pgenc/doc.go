/*
Command pgenc compiles grammars into minimized DFA tables.

Grammars may be given in pgen notation (the default) or in the EBNF notation
of the Go language specification (--format ebnf). Usage:

    pgenc compile grammar.txt -o grammar.json   # write flattened tables as JSON
    pgenc dump grammar.txt --dot out/           # print rules and states, write GraphViz files
    pgenc repl                                  # enter grammar rules interactively

Token categories default to the categories of a Python tokenizer (NAME,
NUMBER, STRING, OP, …). Use --tokens to define a different set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pgen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("pgen.cli")
}
