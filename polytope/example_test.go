// SPDX-License-Identifier: MIT

package polytope_test

import (
	"fmt"

	"github.com/katalvlaran/quaso/polytope"
)

// ExampleBuild builds the system for three ingredients with the first one
// known.
func ExampleBuild() {
	given := polytope.Amounts{polytope.Known(0.5), polytope.Unknown(), polytope.Unknown()}
	sys, err := polytope.Build(3, given)
	if err != nil {
		fmt.Println(err)
		return
	}
	ra, _ := sys.A.Dims()
	rb, _ := sys.B.Dims()
	free, _ := sys.Free()
	fmt.Println("given:", given)
	fmt.Println("inequalities:", ra, "equalities:", rb, "free:", free)
	fmt.Println("Eq:", sys.Eq)
	fmt.Println("contains [0.5 0.3 0.2]:", sys.Contains([]float64{0.5, 0.3, 0.2}, 1e-9))
	fmt.Println("contains [0.5 0.1 0.4]:", sys.Contains([]float64{0.5, 0.1, 0.4}, 1e-9))
	// Output:
	// given: [0.5 ? ?]
	// inequalities: 5 equalities: 2 free: 1
	// Eq: [1 0.5]
	// contains [0.5 0.3 0.2]: true
	// contains [0.5 0.1 0.4]: false
}
