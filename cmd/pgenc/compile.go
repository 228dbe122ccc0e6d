package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/pgen/tables"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile [grammar]",
		Short:   "Compile a grammar into flattened DFA tables (JSON)",
		Example: `  pgenc compile python.gram -o python.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	g, ns, err := loadGrammar(args)
	if err != nil {
		return err
	}
	t := tables.Flatten(g, ns.Name)
	var w io.Writer = os.Stdout
	if *compileFlags.output != "" {
		f, err := os.Create(*compileFlags.output)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && retErr == nil {
				retErr = err
			}
		}()
		w = f
	}
	if err := t.WriteJSON(w); err != nil {
		return fmt.Errorf("cannot write tables: %w", err)
	}
	if *compileFlags.output != "" { // keep stdout clean for JSON
		fp, err := t.Fingerprint()
		if err != nil {
			return err
		}
		pterm.Info.Println(fmt.Sprintf("%d rules, %d states, %d keys, fingerprint %s",
			len(t.Rules), len(t.States), len(t.Keys), fp))
	}
	return nil
}
