package syntax

import (
	"sync"

	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/pgen/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// operators of pgen notation; they are tokens of category OP.
var operators = []string{":", "|", "[", "]", "(", ")", "+", "*"}

var (
	lexerOnce sync.Once
	lexer     *lexmach.LMAdapter
	lexerErr  error
)

// grammarLexer returns the lexer for pgen notation. The lexer DFA is compiled
// on first use.
func grammarLexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		lexer, lexerErr = lexmach.NewLMAdapter(initTokens, nil, scanner.OP)
	})
	return lexer, lexerErr
}

func initTokens(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`\n`), lexmach.MakeToken("NEWLINE", scanner.NEWLINE))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken("NAME", scanner.NAME))
	lexer.Add([]byte(`'([^'\\\n]|\\[^\n])*'`), lexmach.MakeToken("STRING", scanner.STRING))
	lexer.Add([]byte(`"([^"\\\n]|\\[^\n])*"`), lexmach.MakeToken("STRING", scanner.STRING))
	// triple-quoted strings are scanned, but rejected by the grammar compiler
	lexer.Add([]byte(`'''[^']*'''`), lexmach.MakeToken("STRING", scanner.STRING))
	lexer.Add([]byte(`"""[^"]*"""`), lexmach.MakeToken("STRING", scanner.STRING))
	for _, op := range operators {
		lexer.Add([]byte(`\`+op), lexmach.MakeToken(op, scanner.OP))
	}
	lexer.Add([]byte(`.`), lexmach.MakeToken("ERRORTOKEN", scanner.ERRORTOKEN))
}
