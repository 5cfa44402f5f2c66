// SPDX-License-Identifier: MIT
package extrema_test

import (
	"fmt"

	"github.com/katalvlaran/diffentropy/extrema"
)

// ExampleReducedToOriginal maps an index of a Laplacian with rows 2 and 5
// removed back to the full Laplacian.
//
//	full:    0 1 2 3 4 5 6
//	reduced: 0 1 . 2 3 . 4
func ExampleReducedToOriginal() {
	removed := []int{2, 5}
	for r := 0; r < 5; r++ {
		fmt.Print(extrema.ReducedToOriginal(removed, r), " ")
	}
	fmt.Println()
	// Output:
	// 0 1 3 4 6
}
