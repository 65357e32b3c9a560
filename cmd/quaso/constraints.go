// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/quaso/internal/config"
	"github.com/katalvlaran/quaso/polytope"
)

func newConstraintsCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "constraints -c <recipe.yaml>",
		Short: "print the constraint system A·x ≤ Ub, B·x = Eq of a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			r := cfg.ToRecipe()
			sys, err := polytope.Build(len(r.Given), r.Given)
			if err != nil {
				return err
			}
			free, err := sys.Free()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "given %v, %d free dimension(s)\n\n", r.Given, free)
			fmt.Fprintf(out, "A =\n%v\n\n", mat.Formatted(sys.A, mat.Squeeze()))
			fmt.Fprintf(out, "Ub = %v\n\n", sys.Ub)
			fmt.Fprintf(out, "B =\n%v\n\n", mat.Formatted(sys.B, mat.Squeeze()))
			fmt.Fprintf(out, "Eq = %v\n", sys.Eq)

			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "recipe file (YAML)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
