// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fmm2d/quadtree"
)

// Engine owns the quadtree, the per-particle potentials, and the total
// energy for one FMM run. Particles and quadtree geometry are read-only
// inputs; Phi, Psi, the leaf buckets and Pot are exclusively the engine's
// (§3 Ownership).
type Engine struct {
	Cfg       Config
	Particles []Particle
	Tree      *quadtree.Tree
	Pot       []float64
	Eng       float64
	Flops     *FlopCounter

	bin *binomial
}

// NewEngine validates the configuration and particle data (§7 contract
// violations) and allocates the quadtree, mirroring the fail-fast
// setup-time error reporting of inp/msh.go's New* constructors.
func NewEngine(cfg Config, particles []Particle) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(particles) != cfg.N {
		return nil, chk.Err("expected %d particles, got %d", cfg.N, len(particles))
	}
	if err := ValidateParticles(particles, cfg.Box); err != nil {
		return nil, err
	}
	tree, err := quadtree.NewTree(cfg.L, cfg.Box, cfg.P)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Cfg:       cfg,
		Particles: particles,
		Tree:      tree,
		Flops:     NewFlopCounter(),
		bin:       newBinomial(2 * cfg.P),
	}, nil
}

// Run executes the full FMM pipeline in the order mandated by §2: leaf
// P2M, upward M2M, downward L2L+M2L, then leaf evaluation (local
// expansion plus near-field direct). Results land in e.Pot and e.Eng.
func (e *Engine) Run() error {
	p2m(e.Tree, e.Particles, e.Flops)
	upward(e.Tree, e.bin, e.Flops)
	downward(e.Tree, e.bin, e.Flops)
	pot, eng, err := leafEval(e.Tree, e.Particles, e.Flops)
	if err != nil {
		return err
	}
	e.Pot = pot
	e.Eng = eng
	return nil
}
