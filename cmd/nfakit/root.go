package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nfakit/internal/automaton"
	"nfakit/internal/format"
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{fmt.Errorf("%s: want %s, got %d arguments", cmd.Name(), what, len(args))}
		}
		return nil
	}
}

// app carries the flags shared by every subcommand.
type app struct {
	log    *log.Logger
	inFmt  string
	outFmt string
	output string
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	ap := &app{log: logger}
	root := &cobra.Command{
		Use:   "nfakit",
		Short: "Remove epsilon moves from NFAs and simulate them",
		Long: `nfakit works on finite automata described in a small text layout
(or YAML). State 0 is the start state; symbols are a, b, c...

  eremove      write an equivalent automaton without epsilon moves
  simulate     read lines from stdin and print accept or reject for each`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return usageError{fmt.Errorf("missing command")}
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	root.PersistentFlags().StringVarP(&ap.inFmt, "format", "f", "", "input format: text or yaml (default: by file extension)")

	root.AddCommand(
		ap.eremoveCmd(),
		ap.simulateCmd(),
		ap.dotCmd(),
		ap.determinizeCmd(),
		ap.witnessCmd(),
		ap.infoCmd(),
	)
	return root
}

func (ap *app) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ap.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&ap.outFmt, "to", "t", "", "output format: text or yaml (default: input format)")
}

func (ap *app) load(path string) (*automaton.Automaton, format.Format, error) {
	f, set, err := format.ParseFormat(ap.inFmt)
	if err != nil {
		return nil, f, usageError{err}
	}
	if !set {
		f = format.ForPath(path)
	}
	a, err := format.LoadAs(path, f)
	return a, f, err
}

// emit writes a to the output flag destination in the --to format, falling
// back to the input format.
func (ap *app) emit(cmd *cobra.Command, a *automaton.Automaton, inFmt format.Format) error {
	f, set, err := format.ParseFormat(ap.outFmt)
	if err != nil {
		return usageError{err}
	}
	if !set {
		f = inFmt
	}
	return ap.withOutput(cmd, func(w io.Writer) error {
		return format.Write(w, a, f)
	})
}

func (ap *app) withOutput(cmd *cobra.Command, fn func(io.Writer) error) error {
	if ap.output == "" || ap.output == "-" {
		return fn(cmd.OutOrStdout())
	}
	file, err := os.Create(ap.output)
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	ap.log.Printf("wrote %s", ap.output)
	return nil
}
