// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import "github.com/cpmech/fmm2d/quadtree"

// upward performs the M2M pass (§4.4): for levels L-1 down to 0, every
// parent cell's multipole is the binomial-weighted translation and sum of
// its four children's multipoles. Corresponds to original_source/FMM.c's
// upward().
func upward(tree *quadtree.Tree, bin *binomial, flops *FlopCounter) {
	P := tree.P
	for l := tree.L - 1; l >= 0; l-- {
		side := tree.LevelSide(l)
		for ix := 0; ix < side; ix++ {
			for iy := 0; iy < side; iy++ {
				cell := tree.Cell(l, ix, iy)
				for a := range cell.Phi {
					cell.Phi[a] = 0
				}
				for dx := 0; dx <= 1; dx++ {
					for dy := 0; dy <= 1; dy++ {
						child := tree.Cell(l+1, 2*ix+dx, 2*iy+dy)
						t := child.Center - cell.Center

						cell.Phi[0] += child.Phi[0]
						flops.Add(6)

						pz := child.Phi[0]
						for a := 1; a <= P; a++ {
							pz *= t
							cell.Phi[a] += -pz / complex(float64(a), 0)
							flops.Add(12)

							zg := complex(1, 0)
							for g := 0; g <= a-1; g++ {
								if g > 0 {
									zg *= t
								}
								w := child.Phi[a-g] * zg
								cell.Phi[a] += complex(bin.at(a-1, a-g-1), 0) * w
								flops.Add(12)
							}
						}
					}
				}
			}
		}
	}
}
