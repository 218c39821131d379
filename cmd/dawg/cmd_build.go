package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	dawg "github.com/milden6/mindict"
	"github.com/milden6/mindict/lexicon"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		output      string
		format      string
		storeName   string
		noNormalize bool
	)

	cmd := &cobra.Command{
		Use:   "build <wordlist>",
		Short: "Build a minimal automaton from a word list",
		Long: `Build reads one word per line, sorts and deduplicates the list unless
--no-normalize is given, and writes the automaton to a file (-o) and/or
the store (--name). With --no-normalize an unsorted list is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" && storeName == "" {
				return fmt.Errorf("nothing to do: give -o <file> and/or --name <name>")
			}

			opts := a.lexiconOptions()
			if noNormalize {
				opts.Normalize = false
			}
			words, err := lexicon.LoadFile(args[0], opts)
			if err != nil {
				return err
			}

			started := time.Now()
			d, err := dawg.Build(words)
			if err != nil {
				return fmt.Errorf("build %s: %w", args[0], err)
			}
			a.logger.Info("automaton built",
				slog.String("source", args[0]),
				slog.Int("words", d.NumWords()),
				slog.Int("states", d.NumStates()),
				slog.Int("edges", d.NumEdges()),
				slog.Duration("took", time.Since(started)),
			)

			if output != "" {
				if err := a.saveAutomaton(d, output, format); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			}
			if storeName != "" {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.Put(storeName, d); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", storeName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the automaton to")
	cmd.Flags().StringVar(&format, "format", "", "file format: dawg, json or yaml (default from extension or config)")
	cmd.Flags().StringVar(&storeName, "name", "", "also put the automaton in the store under this name")
	cmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "require the word list to be sorted and duplicate-free already")
	return cmd
}
