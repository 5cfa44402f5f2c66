// SPDX-License-Identifier: MIT
package kernel_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/diffentropy/kernel"
)

var sinkG *kernel.Graph

func benchCloud(b *testing.B, n, d int) *kernel.PointSet {
	b.Helper()
	rng := rand.New(rand.NewSource(1337))
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	ps, err := kernel.NewPointSetFromSlice(n, d, data)
	if err != nil {
		b.Fatal(err)
	}
	return ps
}

func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()
	for _, kind := range []kernel.Kind{kernel.KindKNN, kernel.KindAnisotropic} {
		for _, n := range []int{256, 1024} {
			b.Run(fmt.Sprintf("%s/n=%d", kind, n), func(b *testing.B) {
				ps := benchCloud(b, n, 32)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					g, err := kernel.Build(ps, kernel.WithKind(kind), kernel.WithK(10))
					if err != nil {
						b.Fatal(err)
					}
					sinkG = g
				}
			})
		}
	}
}
