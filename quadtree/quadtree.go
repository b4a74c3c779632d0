// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quadtree implements the uniform quadtree used by the FMM engine:
// a dense, depth-L subdivision of a square box into 4^l cells at level l,
// addressed by a single serial index rather than by node pointers.
package quadtree

import (
	"github.com/cpmech/gosl/chk"
)

// Cell holds the geometry and the multipole/local expansion coefficients
// of one quadtree node.
//
// Phi is the multipole expansion (written by the upward pass); Psi is the
// local expansion (written by the downward pass). Both carry P+1 terms,
// orders 0..P inclusive.
type Cell struct {
	Level  int         // 0 (root) .. L (leaves)
	Ix, Iy int          // vector cell index within its level, each in [0, 2^Level)
	Center complex128   // cell-center coordinates
	Side   float64      // cell side length == Box / 2^Level
	Phi    []complex128 // multipole expansion, length P+1
	Psi    []complex128 // local expansion, length P+1
}

// Tree is the uniform quadtree over [0,Box)^2 used by the FMM passes.
// Cells of every level 0..L are stored in one flat slice; level l starts
// at serial index Offset(l) and cell (l,ix,iy) sits at Offset(l)+ix*2^l+iy.
type Tree struct {
	L       int    // maximum (leaf) level
	P       int    // expansion order; cells carry P+1 coefficients
	Box     float64 // domain side length
	offsets []int  // offsets[l] == (4^l-1)/3
	Cells   []Cell // all cells, levels 0..L concatenated
}

// NewTree builds an empty quadtree of depth L over [0,Box)^2, with every
// cell's Phi/Psi zero-initialized to P+1 terms. It does not assign any
// particles; see Tree.LeafIndex and the fmm package's P2M pass for that.
func NewTree(L int, box float64, P int) (*Tree, error) {
	if L < 2 {
		return nil, chk.Err("quadtree depth L must be >= 2 (got %d)", L)
	}
	if P < 0 {
		return nil, chk.Err("expansion order P must be >= 0 (got %d)", P)
	}
	if box <= 0 {
		return nil, chk.Err("box side length must be positive (got %v)", box)
	}

	t := &Tree{L: L, P: P, Box: box}
	t.offsets = make([]int, L+1)
	nc, lc := 1, 1 // cells at level l, side length of level l in cells
	total := 0
	for l := 0; l <= L; l++ {
		t.offsets[l] = total
		total += nc
		if l < L {
			nc *= 4
		}
		lc *= 2
	}

	t.Cells = make([]Cell, total)
	for l := 0; l <= L; l++ {
		side := box / float64(levelSide(l))
		nside := levelSide(l)
		for ix := 0; ix < nside; ix++ {
			for iy := 0; iy < nside; iy++ {
				idx := t.Index(l, ix, iy)
				t.Cells[idx] = Cell{
					Level:  l,
					Ix:     ix,
					Iy:     iy,
					Center: complex((float64(ix)+0.5)*side, (float64(iy)+0.5)*side),
					Side:   side,
					Phi:    make([]complex128, P+1),
					Psi:    make([]complex128, P+1),
				}
			}
		}
	}
	return t, nil
}

// levelSide returns 2^level, the number of cells per side at that level.
func levelSide(level int) int {
	return 1 << uint(level)
}

// LevelSide returns the number of cells per side at the given level.
func (t *Tree) LevelSide(level int) int {
	return levelSide(level)
}

// Offset returns the starting serial index of the given level.
func (t *Tree) Offset(level int) int {
	return t.offsets[level]
}

// Index returns the serial cell index for (level, ix, iy).
func (t *Tree) Index(level, ix, iy int) int {
	return t.offsets[level] + ix*levelSide(level) + iy
}

// Cell returns a pointer to the cell at (level, ix, iy).
func (o *Tree) Cell(level, ix, iy int) *Cell {
	return &o.Cells[o.Index(level, ix, iy)]
}

// AtIndex returns a pointer to the cell with the given serial index.
func (o *Tree) AtIndex(idx int) *Cell {
	return &o.Cells[idx]
}

// NumCells returns the number of cells at the given level (4^level).
func (t *Tree) NumCells(level int) int {
	n := levelSide(level)
	return n * n
}

// LeafIndex maps a position z in [0,Box)^2 to its leaf-level vector index
// (ix, iy), per §4.3: (ix,iy) = floor(z * 2^L / Box).
func (t *Tree) LeafIndex(z complex128) (ix, iy int) {
	side := float64(levelSide(t.L))
	ix = int(real(z) * side / t.Box)
	iy = int(imag(z) * side / t.Box)
	return
}

// InteractionList returns the serial indices of cell (level,ix,iy)'s
// interaction list per §4.5: children of a nearest neighbor of the cell's
// parent that are not themselves nearest neighbors of the cell.
func (t *Tree) InteractionList(level, ix, iy int) []int {
	nside := levelSide(level)
	pix, piy := ix/2, iy/2

	lo := func(p int) int {
		v := 2 * (p - 1)
		if v < 0 {
			return 0
		}
		return v
	}
	hi := func(p int) int {
		v := 2*(p+1) + 1
		if v > nside-1 {
			return nside - 1
		}
		return v
	}

	xlo, xhi := lo(pix), hi(pix)
	ylo, yhi := lo(piy), hi(piy)

	var list []int
	for ux := xlo; ux <= xhi; ux++ {
		for uy := ylo; uy <= yhi; uy++ {
			dx, dy := ux-ix, uy-iy
			if abs(dx) > 1 || abs(dy) > 1 {
				list = append(list, t.Index(level, ux, uy))
			}
		}
	}
	return list
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
