// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_s1_twoParticles implements §8 scenario S1: two particles, L=2, P=4.
func Test_s1_twoParticles(tst *testing.T) {

	//verbose()
	chk.PrintTitle("s1_twoParticles")

	cfg := Config{N: 2, Box: 1.0, L: 2, P: 4}
	particles := []Particle{
		{Z: complex(0.1, 0.1), Q: 1},
		{Z: complex(0.9, 0.9), Q: 1},
	}

	e, err := NewEngine(cfg, particles)
	if err != nil {
		tst.Errorf("NewEngine failed: %v", err)
		return
	}
	if err := e.Run(); err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}

	dist := math.Sqrt(0.64 + 0.64)
	expected := math.Log(dist)

	chk.Scalar(tst, "pot[0]", 1e-6, e.Pot[0], expected)
	chk.Scalar(tst, "pot[1]", 1e-6, e.Pot[1], expected)
	chk.Scalar(tst, "eng", 1e-6, e.Eng, expected)

	potDirect, engDirect, err := AllPairs(particles, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	chk.Vector(tst, "pot_direct", 1e-15, potDirect, []float64{expected, expected})
	chk.Scalar(tst, "eng_direct", 1e-15, engDirect, expected)
}

// Test_s2_threeCollinear implements §8 scenario S2: three collinear
// particles, L=2, P=6.
func Test_s2_threeCollinear(tst *testing.T) {

	//verbose()
	chk.PrintTitle("s2_threeCollinear")

	cfg := Config{N: 3, Box: 1.0, L: 2, P: 6}
	particles := []Particle{
		{Z: complex(0.2, 0.5), Q: 1},
		{Z: complex(0.5, 0.5), Q: 1},
		{Z: complex(0.8, 0.5), Q: 1},
	}

	potDirect, _, err := AllPairs(particles, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}

	l03, l06 := math.Log(0.3), math.Log(0.6)
	chk.Vector(tst, "pot_direct", 1e-12, potDirect, []float64{
		l03 + l06,
		2 * l03,
		l06 + l03,
	})

	e, err := NewEngine(cfg, particles)
	if err != nil {
		tst.Errorf("NewEngine failed: %v", err)
		return
	}
	if err := e.Run(); err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	for j := range particles {
		diff := math.Abs(e.Pot[j] - potDirect[j])
		if diff > 1e-4 {
			tst.Errorf("pot[%d]: |%v - %v| = %v > 1e-4", j, e.Pot[j], potDirect[j], diff)
		}
	}
}

// Test_s4_singleParticle implements §8 scenario S4: a single particle has
// no pairs and no well-separated interactions, so every potential is zero.
func Test_s4_singleParticle(tst *testing.T) {

	//verbose()
	chk.PrintTitle("s4_singleParticle")

	cfg := Config{N: 1, Box: 1.0, L: 3, P: 4}
	particles := []Particle{{Z: complex(0.37, 0.61), Q: 1}}

	e, err := NewEngine(cfg, particles)
	if err != nil {
		tst.Errorf("NewEngine failed: %v", err)
		return
	}
	if err := e.Run(); err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	chk.Scalar(tst, "pot[0]", 1e-15, e.Pot[0], 0)
	chk.Scalar(tst, "eng", 1e-15, e.Eng, 0)

	potDirect, engDirect, err := AllPairs(particles, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	chk.Scalar(tst, "pot_direct[0]", 1e-15, potDirect[0], 0)
	chk.Scalar(tst, "eng_direct", 1e-15, engDirect, 0)
}

// Test_s5_zeroCharges implements §8 scenario S5: with all charges zero,
// every output (and every multipole/local coefficient) is exactly zero.
func Test_s5_zeroCharges(tst *testing.T) {

	//verbose()
	chk.PrintTitle("s5_zeroCharges")

	rng := rand.New(rand.NewSource(1))
	n := 1000
	cfg := Config{N: n, Box: 1.0, L: 4, P: 4}
	particles := make([]Particle, n)
	for j := range particles {
		particles[j] = Particle{Z: complex(rng.Float64(), rng.Float64()), Q: 0}
	}

	e, err := NewEngine(cfg, particles)
	if err != nil {
		tst.Errorf("NewEngine failed: %v", err)
		return
	}
	if err := e.Run(); err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	for j := range particles {
		if e.Pot[j] != 0 {
			tst.Errorf("pot[%d] = %v, want exactly 0", j, e.Pot[j])
		}
	}
	if e.Eng != 0 {
		tst.Errorf("eng = %v, want exactly 0", e.Eng)
	}
	for _, cell := range e.Tree.Cells {
		for a, phi := range cell.Phi {
			if phi != 0 {
				tst.Errorf("phi[%d] = %v, want exactly 0", a, phi)
			}
		}
		for a, psi := range cell.Psi {
			if psi != 0 {
				tst.Errorf("psi[%d] = %v, want exactly 0", a, psi)
			}
		}
	}
}

// Test_linearityInCharges checks §8 property 3: with positions fixed,
// pot_direct is linear in q.
func Test_linearityInCharges(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linearityInCharges")

	rng := rand.New(rand.NewSource(2))
	n := 50
	positions := make([]complex128, n)
	charges := make([]float64, n)
	for j := range positions {
		positions[j] = complex(rng.Float64(), rng.Float64())
		charges[j] = rng.Float64()
	}

	base := make([]Particle, n)
	scaled := make([]Particle, n)
	alpha := 3.5
	for j := range positions {
		base[j] = Particle{Z: positions[j], Q: charges[j]}
		scaled[j] = Particle{Z: positions[j], Q: alpha * charges[j]}
	}

	potBase, _, err := AllPairs(base, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	potScaled, _, err := AllPairs(scaled, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	for j := range potBase {
		expected := alpha * potBase[j]
		if math.Abs(potScaled[j]-expected) > 1e-9*math.Max(1, math.Abs(expected)) {
			tst.Errorf("pot[%d] = %v, want %v (alpha*base)", j, potScaled[j], expected)
		}
	}
}

// Test_translationInvariance checks §8 property 4: translating every
// particle by the same vector changes pot_direct by a common additive
// constant, so potential *differences* between particles are exact.
func Test_translationInvariance(tst *testing.T) {

	//verbose()
	chk.PrintTitle("translationInvariance")

	rng := rand.New(rand.NewSource(3))
	n := 40
	base := make([]Particle, n)
	for j := range base {
		// keep a margin so the shift stays inside [0,1)^2
		base[j] = Particle{Z: complex(0.1+0.7*rng.Float64(), 0.1+0.7*rng.Float64()), Q: rng.Float64()}
	}
	shift := complex(0.05, 0.05)
	shifted := make([]Particle, n)
	for j := range base {
		shifted[j] = Particle{Z: base[j].Z + shift, Q: base[j].Q}
	}

	potBase, _, err := AllPairs(base, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	potShifted, _, err := AllPairs(shifted, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}

	for j := 1; j < n; j++ {
		dBase := potBase[j] - potBase[0]
		dShifted := potShifted[j] - potShifted[0]
		if math.Abs(dBase-dShifted) > 1e-9 {
			tst.Errorf("pot[%d]-pot[0] differs after translation: %v vs %v", j, dBase, dShifted)
		}
	}
}

// Test_scaleInvariancePair checks §8 property 6: for a single pair,
// pot_direct[0] = q1*log|z0-z1| exactly.
func Test_scaleInvariancePair(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scaleInvariancePair")

	particles := []Particle{
		{Z: complex(0.2, 0.3), Q: 1},
		{Z: complex(0.7, 0.9), Q: 2.5},
	}
	potDirect, _, err := AllPairs(particles, nil)
	if err != nil {
		tst.Errorf("AllPairs failed: %v", err)
		return
	}
	expected := particles[1].Q * math.Log(cabs(particles[0].Z-particles[1].Z))
	chk.Scalar(tst, "pot_direct[0]", 1e-15, potDirect[0], expected)
}

func cabs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}
