// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

// Comm wraps the MPI communicator. If MPI is off (or parallel runs are not allowed), all
// collectives reduce to no-ops on a single process
type Comm struct {
	Mpi  *mpi.Communicator // world communicator; nil in serial runs
	rank int               // this processor number
	size int               // number of processors
	wrk  []float64         // workspace for in-place reductions
	iwrk []int             // workspace for in-place reductions of ints
}

// NewComm returns a new communicator
//  allowParallel -- use MPI if it is on; otherwise run in serial mode
func NewComm(allowParallel bool) (o *Comm) {
	o = &Comm{size: 1}
	if allowParallel && mpi.IsOn() {
		o.Mpi = mpi.NewCommunicator(nil)
		o.rank = o.Mpi.Rank()
		o.size = o.Mpi.Size()
		if o.size < 2 {
			o.Mpi = nil
		}
	}
	return
}

// Rank returns the processor number
func (o *Comm) Rank() int { return o.rank }

// Size returns the number of processors
func (o *Comm) Size() int { return o.size }

// Distr tells whether this is a distributed run
func (o *Comm) Distr() bool { return o.Mpi != nil }

// Root tells whether this is the root processor
func (o *Comm) Root() bool { return o.rank == 0 }

// AllReduceSum sums x over all processors; the result is written back into x
func (o *Comm) AllReduceSum(x la.Vector) {
	if o.Mpi == nil || len(x) == 0 {
		return
	}
	if len(o.wrk) < len(x) {
		o.wrk = make([]float64, len(x))
	}
	w := o.wrk[:len(x)]
	copy(w, x)
	o.Mpi.AllReduceSum(x, w)
}

// AllReduceMaxI takes the maximum of x over all processors; the result is written back into x
func (o *Comm) AllReduceMaxI(x []int) {
	if o.Mpi == nil || len(x) == 0 {
		return
	}
	if len(o.iwrk) < len(x) {
		o.iwrk = make([]int, len(x))
	}
	w := o.iwrk[:len(x)]
	copy(w, x)
	o.Mpi.AllReduceMaxI(x, w)
}

// SumScalar returns the sum of a over all processors
func (o *Comm) SumScalar(a float64) float64 {
	if o.Mpi == nil {
		return a
	}
	x := []float64{a}
	o.AllReduceSum(x)
	return x[0]
}

// MaxInt returns the maximum of a over all processors
func (o *Comm) MaxInt(a int) int {
	if o.Mpi == nil {
		return a
	}
	x := []int{a}
	o.AllReduceMaxI(x)
	return x[0]
}

// BcastFromRoot copies x on the root processor to all others
func (o *Comm) BcastFromRoot(x la.Vector) {
	if o.Mpi == nil || len(x) == 0 {
		return
	}
	o.Mpi.BcastFromRoot(x)
}

// Barrier synchronises all processors
func (o *Comm) Barrier() {
	if o.Mpi == nil {
		return
	}
	o.Mpi.Barrier()
}
