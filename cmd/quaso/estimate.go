// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/quaso/hitrun"
	"github.com/katalvlaran/quaso/internal/config"
	"github.com/katalvlaran/quaso/mixture"
)

type estimateFlags struct {
	config     string
	iterations int
	thinning   int
	seed       uint64
	replicates int
	acf        int
	plain      bool
	progress   bool
	verbose    bool
}

func newEstimateCmd() *cobra.Command {
	var f estimateFlags
	cmd := &cobra.Command{
		Use:   "estimate -c <recipe.yaml>",
		Short: "sample the admissible mixtures and report mean +/- 2σ per ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "recipe file (YAML)")
	fl.IntVarP(&f.iterations, "iterations", "n", hitrun.DefaultIterations, "chain length before thinning")
	fl.IntVarP(&f.thinning, "thinning", "k", 0, "keep every k-th point (0: iterations/100)")
	fl.Uint64Var(&f.seed, "seed", 0, "seed for reproducible runs (default: clock)")
	fl.IntVarP(&f.replicates, "replicates", "r", mixture.DefaultReplicates, "independent chains run in parallel")
	fl.IntVar(&f.acf, "acf", 0, "report the autocorrelation up to this many lags (0: off)")
	fl.BoolVar(&f.plain, "plain", false, "print the plain text report instead of a table")
	fl.BoolVar(&f.progress, "progress", false, "print chain progress to stderr")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runEstimate(cmd *cobra.Command, f *estimateFlags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("iterations") {
		cfg.Chain.Iterations = f.iterations
	}
	if fl.Changed("thinning") {
		cfg.Chain.Thinning = f.thinning
	}
	if fl.Changed("seed") {
		cfg.Chain.Seed = &f.seed
	}
	if fl.Changed("replicates") {
		cfg.Chain.Replicates = f.replicates
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), f.verbose)
	opts := append(cfg.ToOptions(), mixture.WithLogger(log))
	if f.progress {
		errOut := cmd.ErrOrStderr()
		opts = append(opts, mixture.WithChain(hitrun.WithProgress(func(p float64) {
			fmt.Fprintf(errOut, "\r%3.0f%%", p*100)
			if p == 1 {
				fmt.Fprintln(errOut)
			}
		})))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	recipe := cfg.ToRecipe()
	res, err := mixture.Estimate(ctx, recipe, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.plain {
		fmt.Fprint(out, res.Summary.Format(recipe.Name))
	} else {
		renderSummary(out, recipe, res)
	}
	if f.acf > 0 && !res.Shortcut {
		renderACF(out, res, f.acf, log.Warn)
	}

	return nil
}

func renderSummary(w io.Writer, recipe mixture.Recipe, res *mixture.Result) {
	s := res.Summary
	fmt.Fprintf(w, "%s: %d samples", recipe.Name, s.Samples)
	if res.Shortcut {
		fmt.Fprint(w, " (fixed by the label)")
	}
	fmt.Fprintln(w)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Ingredient", "Label", "Mean", "± 2σ"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, name := range s.Names {
		label := "?"
		if recipe.Given[i].Known {
			label = fmt.Sprintf("%.2f%%", recipe.Given[i].Value*100)
		}
		tbl.Append([]string{
			name,
			label,
			fmt.Sprintf("%.2f%%", s.Mean[i]*100),
			fmt.Sprintf("%.2f%%", s.Uncertainty(i)*100),
		})
	}
	tbl.Render()
}

// renderACF prints lag 1 and the last requested lag for every ingredient.
// Fixed ingredients have an undefined autocorrelation and show "-".
func renderACF(w io.Writer, res *mixture.Result, lags int, warn func(string, ...any)) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Ingredient", "ACF lag 1", "ACF lag " + strconv.Itoa(lags-1)})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for j, name := range res.Ingredients {
		acf, err := mixture.Autocorrelation(res.Samples, j, lags)
		if err != nil {
			warn("autocorrelation skipped", "err", err)

			return
		}
		row := []string{name, "-", "-"}
		if res.Summary.Std[j] > 0 && lags > 1 {
			row[1] = fmt.Sprintf("%.3f", acf[1])
			row[2] = fmt.Sprintf("%.3f", acf[lags-1])
		}
		tbl.Append(row)
	}
	tbl.Render()
}
