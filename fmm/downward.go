// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import "github.com/cpmech/fmm2d/quadtree"

// downward performs the L2L (local-to-local) and M2L (multipole-to-local)
// passes of §4.5: for levels 2..L, translate each cell's parent local
// expansion down (L2L), then add the M2L contribution of every cell in
// its interaction list. Levels 0 and 1 have no well-separated cells, so
// their local expansions stay at the all-zero value quadtree.NewTree
// already gave them. Corresponds to original_source/FMM.c's downward().
func downward(tree *quadtree.Tree, bin *binomial, flops *FlopCounter) {
	P := tree.P
	for l := 2; l <= tree.L; l++ {
		side := tree.LevelSide(l)

		// (a) L2L from parent.
		for ix := 0; ix < side; ix++ {
			for iy := 0; iy < side; iy++ {
				cell := tree.Cell(l, ix, iy)
				parent := tree.Cell(l-1, ix/2, iy/2)
				t := cell.Center - parent.Center

				for a := 0; a <= P; a++ {
					cell.Psi[a] = 0
					zg := complex(1, 0)
					for g := 0; g <= P-a; g++ {
						if g > 0 {
							zg *= t
						}
						w := parent.Psi[a+g] * zg
						cell.Psi[a] += complex(bin.at(a+g, a), 0) * w
						flops.Add(12)
					}
				}
			}
		}

		// (b) M2L from the interaction list.
		for ix := 0; ix < side; ix++ {
			for iy := 0; iy < side; iy++ {
				cell := tree.Cell(l, ix, iy)
				for _, idx := range tree.InteractionList(l, ix, iy) {
					src := tree.AtIndex(idx)
					d := cell.Center - src.Center
					flops.Add(2)

					L0 := clog(d)
					I1 := cinv(d)
					flops.Add(34 + 6)

					cell.Psi[0] += src.Phi[0] * L0
					zib := complex(1, 0)
					for b := 1; b <= P; b++ {
						zib *= I1
						cell.Psi[0] += src.Phi[b] * zib
						flops.Add(12)
					}

					zim := -I1
					zia := complex(1, 0)
					for a := 1; a <= P; a++ {
						zia *= zim
						cell.Psi[a] += -src.Phi[0] * zia / complex(float64(a), 0)
						flops.Add(12)

						w0 := complex(0, 0)
						zib := complex(1, 0)
						for b := 1; b <= P; b++ {
							zib *= I1
							w0 += complex(bin.at(a+b-1, b-1), 0) * src.Phi[b] * zib
							flops.Add(12)
						}
						cell.Psi[a] += zia * w0
						flops.Add(6)
					}
				}
			}
		}
	}
}
