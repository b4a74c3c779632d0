// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
)

// AllPairs computes the ground-truth O(N^2) all-pairs potential and total
// energy (§4.7), independent of any quadtree. It has no dependency on the
// FMM pipeline and is used purely as a validation oracle. Corresponds to
// original_source/FMM.c's all_direct().
func AllPairs(particles []Particle, flops *FlopCounter) (pot []float64, eng float64, err error) {
	n := len(particles)
	pot = make([]float64, n)
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			delta := particles[j].Z - particles[k].Z
			r := cmplx.Abs(delta)
			if r == 0 {
				return nil, 0, chk.Err("AllPairs: particles %d and %d are coincident", j, k)
			}
			lr := math.Log(r)
			pot[j] += particles[k].Q * lr
			pot[k] += particles[j].Q * lr
			flops.Add(37)
		}
	}
	for j := 0; j < n; j++ {
		eng += particles[j].Q * pot[j]
		flops.Add(2)
	}
	eng *= 0.5
	flops.Add(1)
	return pot, eng, nil
}
