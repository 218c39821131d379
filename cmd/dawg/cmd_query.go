package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milden6/mindict/render"
)

func newAcceptsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accepts <automaton> <word>...",
		Short: "Check whether words are in the lexicon",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			for _, word := range args[1:] {
				if d.Accepts(word) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is in the lexicon.\n", word)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is NOT in the lexicon.\n", word)
				}
			}
			return nil
		},
	}
}

func newLanguageCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "language <automaton>",
		Short: "Print every word the automaton accepts, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			n := 0
			for word := range d.Words() {
				if limit > 0 && n == limit {
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), word)
				n++
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many words (0 for all)")
	return cmd
}

func newTransitionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <automaton>",
		Short: "Print the transition relation and the final states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range d.Transitions() {
				fmt.Fprintln(out, t)
			}
			fmt.Fprintf(out, "start: %d\n", d.Start())
			fmt.Fprintf(out, "final: %v\n", d.FinalStates())
			return nil
		},
	}
}

func newDrawCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "draw <automaton>",
		Short: "Render the automaton as Graphviz DOT or Mermaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return render.Write(cmd.OutOrStdout(), d.Snapshot(), f, render.Options{})
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			err = render.Write(file, d.Snapshot(), f, render.Options{})
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "diagram format: dot or mermaid")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the diagram to a file instead of stdout")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <automaton>",
		Short: "Print the size of the automaton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "words:    %d\n", d.NumWords())
			fmt.Fprintf(out, "states:   %d\n", d.NumStates())
			fmt.Fprintf(out, "final:    %d\n", len(d.FinalStates()))
			fmt.Fprintf(out, "edges:    %d\n", d.NumEdges())
			fmt.Fprintf(out, "register: %d\n", d.RegisterSize())
			fmt.Fprintf(out, "alphabet: %s\n", strings.Join(strings.Split(string(d.Alphabet()), ""), " "))
			return nil
		},
	}
}

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <automaton> <word>",
		Short: "Print the position of a word in the sorted lexicon, or -1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.IndexOf(args[1]))
			return nil
		},
	}
}

func newPrefixesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefixes <automaton> <input>",
		Short: "Print every word that is a prefix of the input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[0])
			if err != nil {
				return err
			}
			for _, r := range d.FindAllPrefixesOf(args[1]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.Index, r.Word)
			}
			return nil
		},
	}
}
