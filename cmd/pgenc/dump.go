package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/npillmayer/pgen/dfa"
	"github.com/npillmayer/pgen/grammar"
	"github.com/npillmayer/pgen/scanner"
	"github.com/npillmayer/pgen/tables"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dumpFlags = struct {
	dot  *string
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "dump [grammar]",
		Short: "Print the DFA states of all rules of a grammar",
		Example: `  pgenc dump python.gram
  pgenc dump expr.ebnf --start Expr --dot out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDump,
	}
	dumpFlags.dot = cmd.Flags().String("dot", "", "directory to write a GraphViz file per rule to")
	dumpFlags.html = cmd.Flags().String("html", "", "directory to write an HTML table per rule to")
	rootCmd.AddCommand(cmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	g, ns, err := loadGrammar(args)
	if err != nil {
		return err
	}
	g.Dump() // only visible in debug mode
	printGrammar(g, ns)
	if *dumpFlags.dot != "" {
		if err := writeGraphViz(g, *dumpFlags.dot); err != nil {
			return err
		}
	}
	if *dumpFlags.html != "" {
		if err := writeHTML(g, ns, *dumpFlags.html); err != nil {
			return err
		}
	}
	return nil
}

// printGrammar displays the rules of g as a tree on the terminal.
func printGrammar(g *grammar.Grammar, ns scanner.Namespace) {
	pterm.Println(fmt.Sprintf("grammar, start rule %s", g.Start))
	root := pterm.NewTreeFromLeveledList(leveledGrammar(g, ns))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledGrammar(g *grammar.Grammar, ns scanner.Namespace) pterm.LeveledList {
	var ll pterm.LeveledList
	for _, rule := range g.Rules() {
		states := g.DFA(rule)
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: rule})
		for i, s := range states {
			text := fmt.Sprintf("state %d", i)
			if s.IsFinal {
				text += " (final)"
			}
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: text})
			for _, key := range grammar.SortedKeys(s) {
				ll = append(ll, pterm.LeveledListItem{
					Level: 2,
					Text:  fmt.Sprintf("%s → %d", keyName(key, ns), dfa.Index(states, s.Transitions[key].Next)),
				})
			}
			for _, nt := range sortedRules(s.NonterminalArcs) {
				ll = append(ll, pterm.LeveledListItem{
					Level: 2,
					Text:  fmt.Sprintf("<%s> ⇒ %d", nt, dfa.Index(states, s.NonterminalArcs[nt])),
				})
			}
		}
	}
	return ll
}

func keyName(key dfa.TransitionKey, ns scanner.Namespace) string {
	if key.IsReserved() {
		return fmt.Sprintf("%q", key.Reserved.Value)
	}
	return ns.Name(key.Category)
}

func writeGraphViz(g *grammar.Grammar, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, rule := range g.Rules() {
		path := filepath.Join(dir, rule+".dot")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = dfa.ToGraphViz(f, g.DFA(rule))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		tracer().Infof("wrote %s", path)
	}
	return nil
}

func writeHTML(g *grammar.Grammar, ns scanner.Namespace, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	t := tables.Flatten(g, ns.Name)
	for _, rule := range g.Rules() {
		path := filepath.Join(dir, rule+".html")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = t.WriteHTML(f, rule, rule+".png")
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		tracer().Infof("wrote %s", path)
	}
	return nil
}

func sortedRules(arcs map[string]*dfa.State) []string {
	names := make([]string, 0, len(arcs))
	for name := range arcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
