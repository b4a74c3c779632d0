// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/fmm2d/quadtree"
)

// leafBuckets groups particle indices by leaf cell using a counting sort
// into (start,end) spans, per §9's explicit allowance in place of the
// source's head/lscl linked list: order holds particle indices grouped by
// leaf, and start[c]..start[c+1] is the span for leaf-local index c.
type leafBuckets struct {
	order []int
	start []int
}

// buildLeafBuckets assigns every particle to its leaf cell.
func buildLeafBuckets(tree *quadtree.Tree, particles []Particle) leafBuckets {
	side := tree.LevelSide(tree.L)
	nLeaf := side * side

	counts := make([]int, nLeaf)
	localOf := make([]int, len(particles))
	for j, par := range particles {
		ix, iy := tree.LeafIndex(par.Z)
		local := ix*side + iy
		localOf[j] = local
		counts[local]++
	}

	start := make([]int, nLeaf+1)
	for c := 0; c < nLeaf; c++ {
		start[c+1] = start[c] + counts[c]
	}

	cursor := make([]int, nLeaf)
	copy(cursor, start[:nLeaf])
	order := make([]int, len(particles))
	for j := range particles {
		c := localOf[j]
		order[cursor[c]] = j
		cursor[c]++
	}

	return leafBuckets{order: order, start: start}
}

// leafEval evaluates each leaf cell's local expansion at every particle it
// contains, then adds near-field direct pairwise contributions from the
// cell and its 8 neighbors (§4.6), and finally reduces the total energy.
// Corresponds to original_source/FMM.c's nn_direct().
func leafEval(tree *quadtree.Tree, particles []Particle, flops *FlopCounter) (pot []float64, eng float64, err error) {
	buckets := buildLeafBuckets(tree, particles)
	side := tree.LevelSide(tree.L)
	pot = make([]float64, len(particles))

	// local-expansion evaluation
	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			c := ix*side + iy
			if buckets.start[c] == buckets.start[c+1] {
				continue
			}
			cell := tree.Cell(tree.L, ix, iy)
			for oi := buckets.start[c]; oi < buckets.start[c+1]; oi++ {
				j := buckets.order[oi]
				d := particles[j].Z - cell.Center
				var cpot complex128
				za := complex(1, 0)
				for a := 0; a <= tree.P; a++ {
					if a > 0 {
						za *= d
					}
					cpot += cell.Psi[a] * za
					flops.Add(6)
				}
				pot[j] = real(cpot)
			}
		}
	}

	// near-field direct pairwise sum, 9-cell (self + 8 neighbors) stencil
	clampLo := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	clampHi := func(v int) int {
		if v > side-1 {
			return side - 1
		}
		return v
	}

	for ix := 0; ix < side; ix++ {
		for iy := 0; iy < side; iy++ {
			c := ix*side + iy
			if buckets.start[c] == buckets.start[c+1] {
				continue
			}
			for ix1 := clampLo(ix - 1); ix1 <= clampHi(ix+1); ix1++ {
				for iy1 := clampLo(iy - 1); iy1 <= clampHi(iy+1); iy1++ {
					c1 := ix1*side + iy1
					if buckets.start[c1] == buckets.start[c1+1] {
						continue
					}
					for oi := buckets.start[c]; oi < buckets.start[c+1]; oi++ {
						j := buckets.order[oi]
						for ok := buckets.start[c1]; ok < buckets.start[c1+1]; ok++ {
							k := buckets.order[ok]
							if j >= k {
								continue
							}
							delta := particles[j].Z - particles[k].Z
							r := cmplx.Abs(delta)
							if r == 0 {
								utl.Panic("leafEval: particles %d and %d are coincident", j, k)
							}
							lr := math.Log(r)
							pot[j] += particles[k].Q * lr
							pot[k] += particles[j].Q * lr
							flops.Add(37)
						}
					}
				}
			}
		}
	}

	eng = 0
	for j := range particles {
		eng += particles[j].Q * pot[j]
		flops.Add(2)
	}
	eng *= 0.5
	flops.Add(1)
	return pot, eng, nil
}
