package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/pgen/syntax"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Enter grammar rules interactively",
		Long: `repl starts an interactive shell. Every line is a rule in pgen notation.
Lines starting with ':' are commands:

  :compile      compile the rules entered so far
  :dump         print the DFA states of the compiled grammar
  :rules        list the rules entered so far
  :load FILE    append the rules of a grammar file
  :reset        forget all rules
  :quit         leave the shell (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	repl, err := readline.New("pgen> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{repl: repl, ns: namespace()}
	pterm.Info.Println("Welcome to pgenc") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")    // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// Intp is our interpreter object
type Intp struct {
	repl  *readline.Instance
	ns    scanner.Namespace
	rules []string         // source texts of the rules entered so far
	g     *grammar.Grammar // last compiled grammar
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			for _, e := range multierr.Errors(err) {
				pterm.Error.Println(e.Error())
			}
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a line of input, which is either a rule or a command.
// It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.addRule(line)
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":reset":
		intp.rules, intp.g = nil, nil
		pterm.Info.Println("grammar cleared")
	case ":rules":
		for i, rule := range intp.rules {
			pterm.Println(fmt.Sprintf("%3d  %s", i+1, strings.ReplaceAll(rule, "\n", "\n     ")))
		}
	case ":load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :load FILE")
		}
		return false, intp.load(args[1])
	case ":compile":
		return false, intp.compile()
	case ":dump":
		if intp.g == nil {
			return false, fmt.Errorf("no grammar compiled yet")
		}
		printGrammar(intp.g, intp.ns)
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

// addRule checks the syntax of a rule before adding it.
func (intp *Intp) addRule(rule string) error {
	fragments, err := syntax.Parse(rule)
	if err != nil {
		return err
	}
	if len(fragments) != 1 {
		return fmt.Errorf("please enter exactly one rule per line")
	}
	intp.rules = append(intp.rules, rule)
	return nil
}

// load appends all rules of a grammar file. The file is parsed as a whole,
// thus rules may span lines. Nothing is appended if the file has errors.
func (intp *Intp) load(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("unable to read grammar file: %w", err)
	}
	text := string(src)
	rules, err := syntax.ParseRules(text)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	for _, r := range rules {
		intp.rules = append(intp.rules, r.Text(text))
	}
	pterm.Info.Println(fmt.Sprintf("%d rules loaded from %s", len(rules), filename))
	return nil
}

func (intp *Intp) compile() error {
	if len(intp.rules) == 0 {
		return fmt.Errorf("no rules entered yet")
	}
	opts, err := compileOptions()
	if err != nil {
		return err
	}
	g, err := syntax.Compile(strings.Join(intp.rules, "\n")+"\n", intp.ns, opts...)
	if err != nil {
		return err
	}
	intp.g = g
	states := 0
	for _, rule := range g.Rules() {
		states += len(g.DFA(rule))
	}
	pterm.Info.Println(fmt.Sprintf("%d rules, %d states, %d reserved strings, start rule %s",
		len(g.Rules()), states, len(g.ReservedStrings), g.Start))
	return nil
}
