// SPDX-License-Identifier: MIT

package mutualinfo

import (
	"cmp"
	"fmt"
	"slices"
)

// ClassPartition maps every label value to the ordered indices of the points
// carrying it. Keys are the labels' fmt representation, sorted by label.
type ClassPartition struct {
	Keys    []string
	Indices [][]int
	// N is the number of labelled points.
	N int
}

// NewPartition groups point indices by label.
//
// Errors: ErrEmptyPartition.
// Complexity: O(N log C) for C classes.
func NewPartition[L cmp.Ordered](labels []L) (*ClassPartition, error) {
	if len(labels) == 0 {
		return nil, miErrorf("NewPartition", ErrEmptyPartition)
	}
	byLabel := make(map[L][]int)
	for i, l := range labels {
		byLabel[l] = append(byLabel[l], i)
	}
	keys := make([]L, 0, len(byLabel))
	for l := range byLabel {
		keys = append(keys, l)
	}
	slices.Sort(keys)

	p := &ClassPartition{N: len(labels)}
	for _, l := range keys {
		p.Keys = append(p.Keys, fmt.Sprint(l))
		p.Indices = append(p.Indices, byLabel[l])
	}
	return p, nil
}

// Len returns the number of classes.
func (p *ClassPartition) Len() int { return len(p.Keys) }

// Weights returns the occupancy fraction of every class.
func (p *ClassPartition) Weights() []float64 {
	out := make([]float64, len(p.Indices))
	for c, idx := range p.Indices {
		out[c] = float64(len(idx)) / float64(p.N)
	}
	return out
}

// Labels returns the class ordinal of every point.
func (p *ClassPartition) Labels() []int {
	out := make([]int, p.N)
	for c, idx := range p.Indices {
		for _, i := range idx {
			out[i] = c
		}
	}
	return out
}

// restrict re-expresses the partition over graph vertices when the graph
// was built on a subsample (index maps vertex → original row). Classes
// left without vertices are dropped.
func (p *ClassPartition) restrict(index []int) *ClassPartition {
	if index == nil {
		return p
	}
	vertex := make(map[int]int, len(index))
	for v, orig := range index {
		vertex[orig] = v
	}
	out := &ClassPartition{N: len(index)}
	for c, idx := range p.Indices {
		var vs []int
		for _, i := range idx {
			if v, ok := vertex[i]; ok {
				vs = append(vs, v)
			}
		}
		if len(vs) == 0 {
			continue
		}
		out.Keys = append(out.Keys, p.Keys[c])
		out.Indices = append(out.Indices, vs)
	}
	return out
}
