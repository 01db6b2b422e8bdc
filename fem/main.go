// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements mass matrices and L2 projections onto finite element systems
package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/xj361685640/IBAMR/inp"
)

// Main holds all data for computing the L2 projections listed in a simulation file
type Main struct {
	Sim     *inp.Simulation // simulation data
	Comm    *Comm           // communicator
	Dom     *Domain         // domain with all systems
	Proj    *Projector      // projector
	Results []*Results      // results of each projection; available after Run
	Nproc   int             // number of processors
	Proc    int             // processor id
	ShowMsg bool            // show messages
	SaveRes bool            // save results files
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath   -- simulation (.sim) filename including full path
//   alias         -- word to be appended to simulation key; e.g. when running multiple solutions
//   erasePrev     -- erase previous results files
//   allowParallel -- allow parallel execution; otherwise, run in serial mode regardless whether MPI is on or not
//   verbose       -- show messages
func NewMain(simfilepath, alias string, erasePrev, allowParallel, verbose bool) (o *Main, err error) {

	// new Main object
	o = new(Main)
	o.SaveRes = true

	// communicator
	o.Comm = NewComm(allowParallel)
	o.Proc = o.Comm.Rank()
	o.Nproc = o.Comm.Size()
	o.ShowMsg = verbose && o.Comm.Root()

	// fix erasePrev flag when MPI is on
	if !o.Comm.Root() {
		erasePrev = false
	}

	// read input data
	o.Sim, err = inp.ReadSim(simfilepath, alias, erasePrev, o.Comm.Root())
	if err != nil {
		return nil, chk.Err("cannot read simulation input data:\n%v", err)
	}
	o.Sim.ApplyOptions()

	// direct solvers
	if !o.Comm.Distr() || !mpi.IsOn() {
		if o.Sim.LinSol.Consistent == "mumps" {
			o.Sim.LinSol.Consistent = "umfpack"
		}
		if o.Sim.LinSol.Lumped == "mumps" {
			o.Sim.LinSol.Lumped = "umfpack"
		}
	}

	// message
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
		io.Pf("> Number of processors = %d\n", o.Nproc)
	}

	// domain
	o.Dom, err = NewDomain(o.Sim, o.Comm, verbose)
	if err != nil {
		return nil, chk.Err("cannot allocate domain:\n%v", err)
	}

	// projector
	o.Proj = NewProjector(o.Dom, &o.Sim.LinSol, o.Sim.Data.Logging && verbose)
	return
}

// Run computes all projections
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Computing %d projections\n", len(o.Sim.Projections))
	}

	// loop over projections
	o.Results = make([]*Results, len(o.Sim.Projections))
	for idx, prj := range o.Sim.Projections {
		o.Results[idx], err = o.RunOne(idx, prj)
		if err != nil {
			return chk.Err("projection # %d failed:\n%v", idx, err)
		}
	}
	return
}

// RunOne computes one projection
//  Input:
//   idx -- index of projection in simulation file
//   prj -- projection data
func (o *Main) RunOne(idx int, prj *inp.ProjectionData) (res *Results, err error) {

	// system and sources
	sys, err := o.Dom.GetSystem(prj.System)
	if err != nil {
		return
	}
	fcns, err := o.Sim.Functions.GetList(prj.Sources)
	if err != nil {
		return
	}
	sys.Cons.T = prj.Time

	// right-hand side
	rhs := sys.Sol.ZeroClone()
	err = o.Proj.AssembleRHS(rhs, sys.Name, fcns, prj.Time)
	if err != nil {
		return
	}

	// projection
	converged, err := o.Proj.ComputeL2Projection(sys.Sol, rhs, sys.Name, prj.Consistent, true, false, prj.Tol, prj.MaxIts)
	if err != nil {
		return
	}
	if !converged && o.ShowMsg {
		io.PfRed(">> Linear solver did not converge for projection onto %q\n", sys.Name)
	}

	// error
	l2err, err := o.Proj.L2Error(sys.Sol, sys.Name, fcns, prj.Time)
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf(">> Projection onto %q: L2 error = %g\n", sys.Name, l2err)
	}

	// results
	res = NewResults(sys, sys.Sol)
	res.Key = o.Sim.Key
	res.Sources = prj.Sources
	res.Consistent = prj.Consistent
	res.Converged = converged
	res.Time = prj.Time
	res.L2Error = l2err
	if o.SaveRes && o.Comm.Root() {
		err = res.Save(o.Sim.DirOut, ResultsFilename(o.Sim.Key, sys.Name, idx), o.ShowMsg)
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit frees solvers and prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	o.Proj.ClearCache()

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}
