// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
	"github.com/xj361685640/IBAMR/inp"
)

// Direct wraps the sparse direct solvers of gosl
//  "umfpack" -- local parts are joined in the root processor, which solves and broadcasts x
//  "mumps"   -- parallel solver; requires MPI
type Direct struct {
	Name string          // "umfpack" or "mumps"
	A    *Matrix         // matrix
	comm *Comm           // communicator
	lis  la.SparseSolver // the actual solver; nil in non-root processors with umfpack
	T    *la.Triplet     // triplet given to the solver
}

// add solvers to factory
func init() {
	allocators["umfpack"] = func() LinSolver { return &Direct{Name: "umfpack"} }
	allocators["mumps"] = func() LinSolver { return &Direct{Name: "mumps"} }
}

// Init initialises and factorises A. P is ignored
//  umfpack uses its symmetric strategy if A.SymmetryEternal is set. mumps is only told that A
//  is symmetric by prms.Symmetric, since it would then sum the entries of both triangles.
func (o *Direct) Init(A, P *Matrix, prms *inp.LinSolData) (err error) {

	// recover from gosl panics
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%s solver failed:\n%v", o.Name, r)
		}
	}()

	// check
	if A.N == 0 {
		return chk.Err("cannot initialise %s solver with empty matrix", o.Name)
	}
	if !A.Closed() {
		return chk.Err("matrix must be closed before initialising %s solver", o.Name)
	}
	o.A, o.comm = A, A.comm
	if prms == nil {
		prms = new(inp.LinSolData)
		prms.SetDefault()
	}
	args := &la.SpArgs{
		Symmetric: prms.Symmetric || (o.Name == "umfpack" && A.SymmetryEternal),
		Verbose:   prms.Verbose,
		Ordering:  prms.Ordering,
		Scaling:   prms.Scaling,
	}

	// triplet
	o.T = A.Triplet()
	switch o.Name {
	case "umfpack":
		if o.comm.Distr() {
			la.SpTriReduce(o.comm.Mpi, o.T)
		}
		if !o.comm.Root() {
			return
		}
	case "mumps":
		if !mpi.IsOn() {
			return chk.Err("mumps solver requires MPI")
		}
		args.Communicator = o.comm.Mpi
		if args.Communicator == nil {
			args.Communicator = mpi.NewCommunicator(nil)
		}
	}

	// factorise
	o.lis = la.NewSparseSolver(o.Name)
	o.lis.Init(o.T, args)
	o.lis.Fact()
	return
}

// SetReusePreconditioner does nothing: the factorisation is always reused
func (o *Direct) SetReusePreconditioner(reuse bool) {}

// Free frees memory
func (o *Direct) Free() {
	if o.lis != nil {
		o.lis.Free()
		o.lis = nil
	}
}

// Solve solves A⋅x = b; rtol and maxIt are ignored
func (o *Direct) Solve(x, b *Vector, rtol float64, maxIt int) (reason ConvergedReason, its int, err error) {

	// recover from gosl panics
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%s solver failed:\n%v", o.Name, r)
		}
	}()

	// check
	if o.A == nil {
		return 0, 0, chk.Err("%s solver must be initialised first", o.Name)
	}
	if b.Dirty() {
		return 0, 0, chk.Err("right-hand side vector must be closed")
	}
	if x == b {
		return 0, 0, chk.Err("target and source must be different vectors")
	}
	x.DropPending()

	// solve
	switch o.Name {
	case "umfpack":
		if o.comm.Root() {
			o.lis.Solve(x.Data, b.Data, false)
		}
		o.comm.BcastFromRoot(x.Data)
	default:
		o.lis.Solve(x.Data, b.Data, false)
	}
	return ConvergedIts, 1, nil
}
