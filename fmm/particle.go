// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fmm implements the 2-D Fast Multipole Method engine: a uniform
// quadtree over a square box, P2M/M2M/M2L/L2L translation passes, leaf
// evaluation with near-field direct summation, and an independent
// all-pairs reference evaluator.
package fmm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Particle is one point charge: position Z in the complex plane and real
// charge Q. Particles are read-only inputs to the engine.
type Particle struct {
	Z complex128 // position
	Q float64    // charge
}

// Config holds the engine's sizing/configuration inputs: particle count N,
// box side length Box, quadtree depth L and expansion order P.
type Config struct {
	N   int     // number of particles
	Box float64 // side length of the square domain
	L   int     // quadtree depth
	P   int     // expansion order
}

// Init sets defaults then applies named parameters, following the same
// pattern as msolid.SmallElasticity.Init: iterate prms, switch on name.
func (o *Config) Init(prms fun.Prms) {
	o.Box = 1.0
	o.L = 6
	o.P = 6
	for _, p := range prms {
		switch p.N {
		case "N":
			o.N = int(p.V)
		case "BOX":
			o.Box = p.V
		case "L":
			o.L = int(p.V)
		case "P":
			o.P = int(p.V)
		}
	}
}

// Validate checks the contract-violation conditions of §7: N=0, L<2, P<0,
// or a non-positive box are all fatal setup-time errors.
func (o Config) Validate() error {
	if o.N == 0 {
		return chk.Err("N must be > 0 (got %d)", o.N)
	}
	if o.L < 2 {
		return chk.Err("L must be >= 2 (got %d)", o.L)
	}
	if o.P < 0 {
		return chk.Err("P must be >= 0 (got %d)", o.P)
	}
	if o.Box <= 0 {
		return chk.Err("BOX must be > 0 (got %v)", o.Box)
	}
	return nil
}

// ValidateParticles checks that every particle lies in [0,Box)^2 and that
// no two particles are coincident, per the caller-contract in §3/§7. The
// coincidence check is a hash-map lookup, not an all-pairs scan, so this
// stays O(N) and does not undercut the engine's own O(N) complexity.
func ValidateParticles(particles []Particle, box float64) error {
	seen := make(map[complex128]int, len(particles))
	for j, pj := range particles {
		x, y := real(pj.Z), imag(pj.Z)
		if x < 0 || x >= box || y < 0 || y >= box {
			return chk.Err("particle %d position %v is outside [0,%v)^2", j, pj.Z, box)
		}
		if k, dup := seen[pj.Z]; dup {
			return chk.Err("particles %d and %d are coincident at %v", k, j, pj.Z)
		}
		seen[pj.Z] = j
	}
	return nil
}
