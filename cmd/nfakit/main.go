package main

import (
	"errors"
	"io"
	"log"
	"os"

	"nfakit/internal/format"
)

const (
	exitOK = iota
	exitUsage
	exitUnavailable
	exitFailure
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	logger := log.New(errOut, "nfakit: ", 0)
	root := newRootCmd(logger)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	logger.Print(err)

	var ue usageError
	switch {
	case errors.As(err, &ue):
		logger.Printf("run %q for usage", root.Name()+" --help")
		return exitUsage
	case errors.Is(err, format.ErrUnavailable):
		return exitUnavailable
	default:
		return exitFailure
	}
}
