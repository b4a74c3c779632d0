// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math/cmplx"

	"github.com/cpmech/gosl/utl"
)

// clog returns the principal complex logarithm of a, using the standard
// library's atan2-based phase computation. original_source/FMM.c's clgn
// used atan(Im/Re), valid only for Re>0; §9 documents that as a bug and
// mandates atan2 for correctness, which is what cmplx.Log already gives.
func clog(a complex128) complex128 {
	return cmplx.Log(a)
}

// cinv returns 1/a. a==0 can only happen if the M2L well-separatedness
// precondition (§4.5) was violated by a caller bug, not by any input data
// the engine itself produces, so this is an assertion, not a returned
// error (§7, "numerical degeneracies").
func cinv(a complex128) complex128 {
	if a == 0 {
		utl.Panic("cinv: cannot invert a zero displacement; cells are not well-separated")
	}
	return 1 / a
}

// binomial is a Pascal-triangle table of exact binomial coefficients for
// 0<=k<=n<=nmax, built once per expansion order (§4.2: "correctness, not
// speed, governs this").
type binomial struct {
	rows [][]float64
}

// newBinomial builds the table up to n==nmax inclusive.
func newBinomial(nmax int) *binomial {
	rows := make([][]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		rows[n] = make([]float64, n+1)
		rows[n][0] = 1
		rows[n][n] = 1
		for k := 1; k < n; k++ {
			rows[n][k] = rows[n-1][k-1] + rows[n-1][k]
		}
	}
	return &binomial{rows: rows}
}

// at returns C(n,k), valid for 0<=k<=n<=nmax.
func (b *binomial) at(n, k int) float64 {
	return b.rows[n][k]
}
