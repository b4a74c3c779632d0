// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import "github.com/cpmech/fmm2d/quadtree"

// p2m forms the leaf-level multipole expansions (§4.3): for every
// particle, accumulate its contribution into the P+1 multipole terms of
// the leaf cell containing it. Corresponds to original_source/FMM.c's
// mp_leaf().
func p2m(tree *quadtree.Tree, particles []Particle, flops *FlopCounter) {
	P := tree.P
	for _, par := range particles {
		ix, iy := tree.LeafIndex(par.Z)
		cell := tree.Cell(tree.L, ix, iy)
		d := par.Z - cell.Center
		w := complex(par.Q, 0)
		cell.Phi[0] += w
		flops.Add(2)
		for a := 1; a <= P; a++ {
			w *= d
			cell.Phi[a] += -w / complex(float64(a), 0)
			flops.Add(12)
		}
	}
}
