/*
Package pgen is a grammar compiler for table-driven LL parsers.

pgen converts grammars in an extended BNF notation into one minimized
deterministic finite automaton (DFA) per grammar rule. Every DFA transition
is compiled into a lookup key, which is either a token category or an
interned reserved string (a keyword or operator spelling), paired with a
transition instruction for a downstream parsing engine.

Package structure is as follows:

■ nfa: NFA nodes and fragment combinators, as produced by grammar front ends.

■ dfa: Powerset construction and state minimization of rule automata.

■ grammar: Assembly of the compiled grammar, including the compilation of
terminal transitions and the interning of reserved strings.

■ syntax: Front ends reading grammar text (pgen notation and Go EBNF notation).

■ scanner: Token category namespaces and a lexmachine adapter.

■ tables: A flattened, serializable encoding of a compiled grammar.

Command pgenc (in cmd/pgenc) compiles grammar files from the command line.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pgen
