package main

import (
	"github.com/spf13/cobra"

	"nfakit/internal/automaton"
)

func (ap *app) eremoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eremove <file>",
		Short: "Write an equivalent automaton without epsilon moves",
		Args:  exactArgs(1, "an ε-NFA description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			enfa, f, err := ap.load(args[0])
			if err != nil {
				return err
			}
			nfa, err := automaton.RemoveEpsilons(enfa)
			if err != nil {
				return err
			}
			return ap.emit(cmd, nfa, f)
		},
	}
	ap.addOutputFlags(cmd)
	return cmd
}

func (ap *app) determinizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "determinize <file>",
		Short: "Write the subset-construction DFA of an automaton",
		Args:  exactArgs(1, "an automaton description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, f, err := ap.load(args[0])
			if err != nil {
				return err
			}
			d, err := automaton.Determinize(a)
			if err != nil {
				return err
			}
			ap.log.Printf("%d states -> %d states", a.NumStates, d.NumStates)
			return ap.emit(cmd, d, f)
		},
	}
	ap.addOutputFlags(cmd)
	return cmd
}
