// SPDX-License-Identifier: MIT

package mixture

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// reportWidth is the width of the rule lines in Format.
const reportWidth = 66

// Summary is the per-ingredient mean and spread of a sample matrix.
type Summary struct {
	Names   []string
	Mean    []float64
	Std     []float64 // population standard deviation
	Samples int       // number of rows summarized
}

// Summarize computes column means and population standard deviations.
// Missing names are generated as "x1", "x2", ….
func Summarize(samples mat.Matrix, names []string) Summary {
	r, c := samples.Dims()
	s := Summary{
		Names:   make([]string, c),
		Mean:    make([]float64, c),
		Std:     make([]float64, c),
		Samples: r,
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		if j < len(names) {
			s.Names[j] = names[j]
		} else {
			s.Names[j] = fmt.Sprintf("x%d", j+1)
		}
		mat.Col(col, j, samples)
		s.Mean[j], s.Std[j] = stat.PopMeanStdDev(col, nil)
	}

	return s
}

// Uncertainty returns the reported ± band of ingredient i: two standard
// deviations.
func (s Summary) Uncertainty(i int) float64 { return 2 * s.Std[i] }

// Format renders the report printed after a run:
//
//	MCMC predictions from 100 (thinned) samples:
//	Dish: lentil spread
//	8 ingredients in total
//	==================================================================
//	                                   lentils:    63% +/- 0.00%
//	...
func (s Summary) Format(dish string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MCMC predictions from %d (thinned) samples:\n", s.Samples)
	fmt.Fprintf(&sb, "Dish: %s\n", dish)
	fmt.Fprintf(&sb, "%d ingredients in total\n", len(s.Names))
	rule := strings.Repeat("=", reportWidth)
	sb.WriteString(rule + "\n")
	for i, name := range s.Names {
		fmt.Fprintf(&sb, "%42s: %5.2g%% +/- %4.2f%%\n", name, s.Mean[i]*100, s.Uncertainty(i)*100)
	}
	sb.WriteString(rule + "\n")

	return sb.String()
}
