package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage automata kept in the local store",
	}

	put := &cobra.Command{
		Use:   "put <name> <automaton-file>",
		Short: "Copy an automaton file into the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(args[1])
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Put(args[0], d)
		},
	}

	var format string
	get := &cobra.Command{
		Use:   "get <name> <automaton-file>",
		Short: "Write a stored automaton to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadAutomaton(storeRefPrefix + args[0])
			if err != nil {
				return err
			}
			return a.saveAutomaton(d, args[1], format)
		},
	}
	get.Flags().StringVar(&format, "format", "", "file format: dawg, json or yaml")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored automata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			names, err := s.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an automaton from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(args[0])
		},
	}

	cmd.AddCommand(put, get, list, del)
	return cmd
}
