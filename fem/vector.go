// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Vector holds a global vector replicated on all processors
//
//  Contributions added with Add are kept in a pending array until Close is called; then they
//  are summed over all processors and added to Data. Set writes Data directly and must be
//  called with the same values on every processor.
type Vector struct {
	Data    la.Vector // [n] closed values
	comm    *Comm     // communicator
	pending la.Vector // [n] local contributions not yet combined
	dirty   bool      // there are pending contributions
}

// NewVector returns a new vector filled with zeros
func NewVector(comm *Comm, n int) (o *Vector) {
	return &Vector{
		Data:    la.NewVector(n),
		comm:    comm,
		pending: la.NewVector(n),
	}
}

// Size returns the length of vector
func (o *Vector) Size() int { return len(o.Data) }

// Add adds a local contribution to component i
func (o *Vector) Add(i int, value float64) {
	o.pending[i] += value
	o.dirty = true
}

// AddVec adds local contributions v[k] to components eqs[k]
func (o *Vector) AddVec(v la.Vector, eqs []int) {
	for k, I := range eqs {
		o.pending[I] += v[k]
	}
	o.dirty = true
}

// Set sets component i
func (o *Vector) Set(i int, value float64) { o.Data[i] = value }

// Get returns component i (closed value)
func (o *Vector) Get(i int) float64 { return o.Data[i] }

// Dirty tells whether there are contributions waiting for Close
func (o *Vector) Dirty() bool { return o.dirty }

// Close combines pending contributions of all processors. Collective
func (o *Vector) Close() {
	o.comm.AllReduceSum(o.pending)
	floats.Add(o.Data, o.pending)
	o.pending.Fill(0)
	o.dirty = false
}

// Fill sets all components to s and drops pending contributions
func (o *Vector) Fill(s float64) {
	o.Data.Fill(s)
	o.pending.Fill(0)
	o.dirty = false
}

// DropPending discards the contributions waiting for Close
func (o *Vector) DropPending() {
	o.pending.Fill(0)
	o.dirty = false
}

// ZeroClone returns a new vector with the same layout and filled with zeros
func (o *Vector) ZeroClone() *Vector {
	return NewVector(o.comm, len(o.Data))
}

// Copy copies the closed values of another vector into this one
func (o *Vector) Copy(other *Vector) {
	if len(other.Data) != len(o.Data) {
		chk.Panic("cannot copy vector of size %d into vector of size %d", len(other.Data), len(o.Data))
	}
	copy(o.Data, other.Data)
}

// PointwiseDivide sets o[i] = a[i] / b[i]
func (o *Vector) PointwiseDivide(a, b *Vector) {
	floats.DivTo(o.Data, a.Data, b.Data)
}

// Norm returns the Euclidean norm of the closed values
func (o *Vector) Norm() float64 {
	return floats.Norm(o.Data, 2)
}
