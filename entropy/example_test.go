// SPDX-License-Identifier: MIT
package entropy_test

import (
	"fmt"

	"github.com/katalvlaran/diffentropy/entropy"
)

// ExampleVonNeumann drops the trivial eigenvalue 1 (τ = 0.9) and takes the
// Shannon entropy of the normalized remainder: four equal values give log 4.
func ExampleVonNeumann() {
	values := []float64{1, 0.5, 0.5, 0.5, 0.5}
	h, err := entropy.VonNeumann(values)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("H = %.4f\n", h)

	kept, _ := entropy.Retained(values)
	fmt.Println("retained:", kept)
	// Output:
	// H = 1.3863
	// retained: [0.5 0.5 0.5 0.5]
}

// ExampleShannon measures the entropy of a labeling.
func ExampleShannon() {
	h, _ := entropy.Shannon([]int{0, 0, 1, 1})
	fmt.Printf("%.4f\n", h)
	// Output:
	// 0.6931
}
