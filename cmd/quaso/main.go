// SPDX-License-Identifier: MIT

// Command quaso estimates the hidden ingredient fractions of a recipe from
// its label.
//
//	quaso estimate -c recipe.yaml [--iterations N] [--thinning k] [--seed s]
//	               [--replicates r] [--acf L] [--plain] [-v]
//	quaso constraints -c recipe.yaml
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires the command tree to the given writers so tests can
// capture the output.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "quaso [command] (flags)",
		Short:        "estimate recipe proportions from partial label information",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	cobra.EnableCommandSorting = false
	root.AddCommand(
		newEstimateCmd(),
		newConstraintsCmd(),
	)

	return root
}

// newLogger returns a text logger on w; verbose lowers the level to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
