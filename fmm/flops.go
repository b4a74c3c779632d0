// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

// FlopCounter accumulates an approximate floating-point-operation count,
// standing in for original_source/FMM.c's global fop1 (FMM path) and fop2
// (direct path) counters. §6 is explicit that this is "instrumentation
// only" and "not part of the numerical contract" — a nil *FlopCounter is
// valid and simply discards every Add, so passes never need a nil check
// of their own before counting.
type FlopCounter struct {
	Count int64
}

// NewFlopCounter returns a zeroed counter.
func NewFlopCounter() *FlopCounter {
	return &FlopCounter{}
}

// Add accumulates n floating point operations. Safe to call on a nil
// receiver (counting simply becomes a no-op).
func (f *FlopCounter) Add(n int64) {
	if f == nil {
		return
	}
	f.Count += n
}
