// Command vrpctl is the solver's CLI surface (spec §6): solve, import,
// check, analyze, and generate subcommands, each accepting --input-files
// and --out-result plus format-specific flags. Exit code 0 on success, 1 on
// invalid input, 2 on unexpected failure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vrpctl",
	Short: "Vehicle Routing Problem solver CLI",
	Long: `vrpctl drives the constraint-and-objective pipeline and
ruin-and-recreate metaheuristic over Solomon, Li&Lim, TSPLIB, and
Pragmatic JSON problem instances.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

const (
	exitSuccess      = 0
	exitInvalidInput = 1
	exitUnexpected   = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vrpctl:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor classifies an error into spec §6's three-way exit code
// contract.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *inputError:
		return exitInvalidInput
	default:
		return exitUnexpected
	}
}

// inputError marks a failure the CLI attributes to malformed input rather
// than an unexpected internal failure, mapping to exit code 1.
type inputError struct{ err error }

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func asInputError(err error) error {
	if err == nil {
		return nil
	}
	return &inputError{err: err}
}
