package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/pgen/syntax"
	"github.com/npillmayer/pgen/syntax/ebnfx"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var rootFlags = struct {
	trace     *string
	format    *string
	start     *string
	minimizer *string
	tokens    *[]string
}{}

var rootCmd = &cobra.Command{
	Use:   "pgenc",
	Short: "Compile grammars into minimized DFA tables",
	Long: `pgenc compiles every rule of a grammar into a minimized DFA.
Terminals are either token categories (e.g., NAME) or quoted literals
(e.g., 'if'), which are interned as reserved strings.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		setupTracing(*rootFlags.trace)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.trace = flags.StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.format = flags.StringP("format", "f", "", "grammar notation [pgen|ebnf] (default by file extension)")
	rootFlags.start = flags.StringP("start", "s", "", "start production (EBNF notation only)")
	rootFlags.minimizer = flags.String("minimizer", "pairwise", "DFA minimizer [pairwise|partition]")
	rootFlags.tokens = flags.StringSlice("tokens", nil, "token category names (default Python tokens)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		for _, e := range multierr.Errors(err) {
			pterm.Error.Println(e.Error())
		}
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

var traceKeys = []string{
	"pgen.cli", "pgen.nfa", "pgen.dfa", "pgen.grammar", "pgen.syntax", "pgen.scanner", "pgen.tables",
}

func setupTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	gtrace.SyntaxTracer.SetTraceLevel(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Debugf("trace level is %s", level)
}

// --- Loading grammars ------------------------------------------------------

func namespace() scanner.Namespace {
	if len(*rootFlags.tokens) > 0 {
		return scanner.NewNamespace(*rootFlags.tokens...)
	}
	return scanner.PythonTokens()
}

func compileOptions() ([]grammar.Option, error) {
	switch *rootFlags.minimizer {
	case "pairwise":
		return []grammar.Option{grammar.WithMinimizer(dfa.Minimize)}, nil
	case "partition":
		return []grammar.Option{grammar.WithMinimizer(dfa.MinimizePartition)}, nil
	}
	return nil, fmt.Errorf("unknown minimizer %q", *rootFlags.minimizer)
}

// readSource reads a grammar file, or stdin if no file is given.
func readSource(args []string) (text string, name string, err error) {
	var src []byte
	if len(args) == 0 || args[0] == "-" {
		name = "stdin"
		src, err = io.ReadAll(os.Stdin)
	} else {
		name = args[0]
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return "", name, fmt.Errorf("cannot read grammar %s: %w", name, err)
	}
	return string(src), name, nil
}

func notation(name string) string {
	if *rootFlags.format != "" {
		return *rootFlags.format
	}
	if strings.EqualFold(filepath.Ext(name), ".ebnf") {
		return "ebnf"
	}
	return "pgen"
}

// compileGrammar compiles grammar text, either in pgen or in EBNF notation.
func compileGrammar(text string, name string, ns scanner.Namespace) (*grammar.Grammar, error) {
	opts, err := compileOptions()
	if err != nil {
		return nil, err
	}
	var g *grammar.Grammar
	switch format := notation(name); format {
	case "pgen":
		g, err = syntax.Compile(text, ns, opts...)
	case "ebnf":
		if *rootFlags.start == "" {
			return nil, fmt.Errorf("EBNF grammars need a start production (--start)")
		}
		g, err = ebnfx.Compile(text, *rootFlags.start, ns, opts...)
	default:
		return nil, fmt.Errorf("unknown grammar notation %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tracer().Infof("compiled grammar %s: %d rules, start rule %s", name, len(g.Rules()), g.Start)
	return g, nil
}

func loadGrammar(args []string) (*grammar.Grammar, scanner.Namespace, error) {
	text, name, err := readSource(args)
	if err != nil {
		return nil, nil, err
	}
	ns := namespace()
	g, err := compileGrammar(text, name, ns)
	return g, ns, err
}
