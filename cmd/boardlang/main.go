package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

const cliToolVersion = "boardlang 0.1.0-dev"

const (
	exitOK           = 0
	exitProgramError = 1
	exitHostError    = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWithIO(args, os.Stdin, os.Stdout, os.Stderr)
}

// cli carries the streams every command writes to.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := app.rootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err.Error())
		return exitCodeFor(err)
	}
	return exitOK
}

func (app *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "boardlang",
		Short: "Run board-game programs",
		Long:  "Run board-game programs described as AST documents (YAML or JSON).",
	}
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(app.runCommand())
	root.AddCommand(app.checkCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(app.stdout, cliToolVersion)
		},
	})
	return root
}

// hostError marks failures outside the program: loading, decoding,
// configuration and usage.
type hostError struct {
	err error
}

func (e *hostError) Error() string { return e.err.Error() }
func (e *hostError) Unwrap() error { return e.err }

func hostErrorf(format string, args ...any) error {
	return &hostError{err: fmt.Errorf(format, args...)}
}

// exitCodeFor maps an error to the process exit code: 1 when the program
// itself failed, 2 for everything the host or interpreter is to blame for.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var he *hostError
	if errors.As(err, &he) {
		return exitHostError
	}
	var rtErr *interpreter.Error
	if errors.As(err, &rtErr) && rtErr.Kind.ProgramError() {
		return exitProgramError
	}
	return exitHostError
}
