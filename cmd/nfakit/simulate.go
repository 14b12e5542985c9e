package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nfakit/internal/automaton"
	"nfakit/internal/format"
)

func (ap *app) simulateCmd() *cobra.Command {
	var trace, eremove bool
	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Print accept or reject for every line read from stdin",
		Args:  exactArgs(1, "an NFA description file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := ap.load(args[0])
			if err != nil {
				return err
			}
			if a.HasEpsilons() {
				if eremove {
					if a, err = automaton.RemoveEpsilons(a); err != nil {
						return err
					}
				} else {
					ap.log.Printf("%s has epsilon moves; they are not followed (use --eremove)", args[0])
				}
			}

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			for {
				line, rerr := in.ReadString('\n')
				if rerr != nil && !errors.Is(rerr, io.EOF) {
					return fmt.Errorf("%w: stdin: %w", format.ErrUnavailable, rerr)
				}
				if rerr != nil && line == "" {
					break
				}
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				var ok bool
				if trace {
					ok = automaton.Trace(cmd.ErrOrStderr(), a, line)
				} else {
					ok = automaton.Accepts(a, line)
				}
				verdict := "reject"
				if ok {
					verdict = "accept"
				}
				if _, err := fmt.Fprintln(out, verdict); err != nil {
					return err
				}
				if rerr != nil {
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print the frontier after every symbol to stderr")
	cmd.Flags().BoolVar(&eremove, "eremove", false, "remove epsilon moves before simulating")
	return cmd
}
