package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nfakit/internal/automaton"
)

func (ap *app) dotCmd() *cobra.Command {
	var eremove bool
	cmd := &cobra.Command{
		Use:   "dot <file>",
		Short: "Export an automaton as a Graphviz digraph",
		Args:  exactArgs(1, "an automaton description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := ap.load(args[0])
			if err != nil {
				return err
			}
			if eremove {
				if a, err = automaton.RemoveEpsilons(a); err != nil {
					return err
				}
			}
			return ap.withOutput(cmd, func(w io.Writer) error {
				return automaton.ExportDOT(w, a)
			})
		},
	}
	cmd.Flags().BoolVar(&eremove, "eremove", false, "remove epsilon moves first")
	cmd.Flags().StringVarP(&ap.output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func (ap *app) witnessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "witness <file>",
		Short: "Print a shortest accepted word",
		Args:  exactArgs(1, "an automaton description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := ap.load(args[0])
			if err != nil {
				return err
			}
			nfa, err := automaton.RemoveEpsilons(a)
			if err != nil {
				return err
			}
			w, ok := automaton.ShortestWitness(nfa)
			switch {
			case !ok:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "language is empty")
			case w == "":
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "ε")
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return err
		},
	}
}

func (ap *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize an automaton",
		Args:  exactArgs(1, "an automaton description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, f, err := ap.load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:      %s\n", f)
			fmt.Fprintf(out, "states:      %d\n", a.NumStates)
			fmt.Fprintf(out, "alphabet:    %s\n", a.Alphabet)
			fmt.Fprintf(out, "accepting:   %s\n", a.Accepting)
			fmt.Fprintf(out, "reachable:   %s\n", automaton.Reachable(a))
			_, err = fmt.Fprintf(out, "epsilons:    %t\n", a.HasEpsilons())
			return err
		},
	}
}
