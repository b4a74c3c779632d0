// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fmm2d runs the 2-D Fast Multipole Method engine against a randomly
// generated set of point charges, cross-checks it against the all-pairs
// reference evaluator, and reports accuracy, timing and FLOP statistics.
//
// This file is the "external collaborator" described in SPEC_FULL.md §2.1:
// CLI parsing, pseudo-random particle generation, wall-clock/FLOP
// instrumentation and console/plot reporting live here, around the
// fmm package's numerical core.
package main

import (
	"math"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/fmm2d/fmm"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// default input parameters, matching the §6 reference configuration
	n := io.ArgToInt(0, 16000)
	box := io.ArgToFloat(1, 1.0)
	level := io.ArgToInt(2, 6)
	order := io.ArgToInt(3, 6)
	seed := io.ArgToInt(4, 4321)
	doPlot := io.ArgToBool(5, false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nfmm2d -- 2-D Fast Multipole Method\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"number of particles", "N", n,
			"box side length", "BOX", box,
			"quadtree depth", "L", level,
			"expansion order", "P", order,
			"random seed", "seed", seed,
			"plot error histogram", "plot", doPlot,
		))
	}

	// randomly generate particle positions & charges, as in
	// original_source/FMM.c's initialize()
	rnd.Init(seed)
	cfg := fmm.Config{N: n, Box: box, L: level, P: order}
	particles := make([]fmm.Particle, n)
	for j := range particles {
		particles[j] = fmm.Particle{
			Z: complex(rnd.Float64(0, box), rnd.Float64(0, box)),
			Q: rnd.Float64(0, 1),
		}
	}

	// engine
	engine, err := fmm.NewEngine(cfg, particles)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		return
	}

	// FMM pass, timed
	t0 := time.Now()
	if err = engine.Run(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		return
	}
	tfmm := time.Since(t0)

	// all-pairs reference evaluation, timed
	t0 = time.Now()
	potDirect, engDirect, err := fmm.AllPairs(particles, fmm.NewFlopCounter())
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		return
	}
	tdirect := time.Since(t0)

	// validation: max relative per-particle potential difference & energy error
	maxDiff := 0.0
	relDiffs := make([]float64, n)
	for j := 0; j < n; j++ {
		diff := math.Abs((engine.Pot[j] - potDirect[j]) / potDirect[j])
		relDiffs[j] = diff
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	relEngErr := math.Abs((engine.Eng - engDirect) / engDirect)

	if mpi.Rank() == 0 {
		report(maxDiff, relEngErr, tfmm, tdirect, engine.Flops.Count)
		if doPlot {
			plotErrorHistogram(relDiffs)
		}
	}
}

// report prints the accuracy, timing and FLOP/s statistics, in the same
// green/red pass-fail coloring convention as gosl/chk.PrintAnaNum.
func report(maxDiff, relEngErr float64, tfmm, tdirect time.Duration, fmmFlops int64) {
	io.Pf("\n")
	printDiff("max potential difference", maxDiff, 1e-2)
	printDiff("relative energy error", relEngErr, 1e-2)
	io.Pf("\nFMM & direct CPU times = %v %v\n", tfmm, tdirect)
	gflops := float64(fmmFlops) / tfmm.Seconds() / 1e9
	io.Pf("FMM CPU floating-point operations = %d (%.3f Gflop/s)\n", fmmFlops, gflops)
}

func printDiff(label string, value, tol float64) {
	if value <= tol {
		io.PfGreen("%s = %e (<= %e)\n", label, value, tol)
		return
	}
	io.PfRed("%s = %e (> %e)\n", label, value, tol)
}

// plotErrorHistogram saves a histogram of the per-particle relative
// potential error, the same matplotlib-backed workflow as
// ana.PlateHole.PlotStress.
func plotErrorHistogram(relDiffs []float64) {
	data := la.VecClone(relDiffs)
	plt.Clf()
	plt.Hist([][]float64{data}, []string{"relative potential error"}, "")
	plt.Gll("relative error", "count", "")
	plt.SaveD("/tmp", "fmm2d_error_hist.eps")
}
