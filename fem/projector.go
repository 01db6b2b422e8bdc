// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/xj361685640/IBAMR/ele"
	"github.com/xj361685640/IBAMR/inp"
	"github.com/xj361685640/IBAMR/shp"
)

// ProjPair holds a mass matrix and the linear solver that inverts it
type ProjPair struct {
	Solver LinSolver // linear solver
	Matrix *Matrix   // mass matrix
}

// Projector builds, caches and applies mass matrices to compute L2 projections
//
//   M ⋅ x = b
//
//  where b is the mass-weighted source; e.g. computed by AssembleRHS. All methods are collective
//  and the caches are not safe for concurrent use.
type Projector struct {
	dom      *Domain              // domain with systems
	linsol   *inp.LinSolData      // linear solver data
	logging  bool                 // log messages
	rules    *shp.Cache           // quadrature rules
	consist  map[string]*ProjPair // system name => consistent mass matrix and solver
	lumped   map[string]*ProjPair // system name => lumped mass matrix and solver
	diagonal map[string]*Vector   // system name => lumped mass vector
}

// NewProjector returns a new projector
func NewProjector(dom *Domain, linsol *inp.LinSolData, enableLogging bool) (o *Projector) {
	if linsol == nil {
		linsol = new(inp.LinSolData)
		linsol.SetDefault()
	}
	o = &Projector{dom: dom, linsol: linsol, logging: enableLogging, rules: shp.NewCache()}
	o.ClearCache()
	return
}

// SetLoggingEnabled enables or disables messages
func (o *Projector) SetLoggingEnabled(enable bool) { o.logging = enable }

// LoggingEnabled tells whether messages are enabled
func (o *Projector) LoggingEnabled() bool { return o.logging }

// ClearCache frees all cached matrices, solvers and quadrature rules
func (o *Projector) ClearCache() {
	for _, pair := range o.consist {
		pair.Solver.Free()
	}
	for _, pair := range o.lumped {
		pair.Solver.Free()
	}
	o.consist = make(map[string]*ProjPair)
	o.lumped = make(map[string]*ProjPair)
	o.diagonal = make(map[string]*Vector)
	o.rules.Clear()
}

// BuildL2ProjectionSolver returns the consistent mass matrix of a system and its solver.
// The lumped matrix is used to build the preconditioner.
func (o *Projector) BuildL2ProjectionSolver(systemName string) (pair *ProjPair, err error) {

	// cached
	if pair, ok := o.consist[systemName]; ok {
		return pair, nil
	}
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	o.log("> Building consistent mass matrix of system %q\n", systemName)

	// assemble
	M, err := o.assemble(sys, "consistent")
	if err != nil {
		return
	}

	// reset rows and columns of constrained DOFs on sides with zero displacement
	rows := o.zeroDisplRows(sys)
	M.ZeroRowsColumns(rows, 1)
	M.Close()
	o.log(">> Number of rows reset due to zero displacement = %d\n", len(rows))

	// preconditioning matrix
	lpair, err := o.BuildLumpedL2ProjectionSolver(systemName)
	if err != nil {
		return
	}

	// solver
	pair, err = o.newPair(M, lpair.Matrix, o.linsol.Consistent)
	if err != nil {
		return
	}
	o.consist[systemName] = pair
	return
}

// BuildLumpedL2ProjectionSolver returns the lumped mass matrix of a system and its solver
func (o *Projector) BuildLumpedL2ProjectionSolver(systemName string) (pair *ProjPair, err error) {

	// cached
	if pair, ok := o.lumped[systemName]; ok {
		return pair, nil
	}
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	o.log("> Building lumped mass matrix of system %q\n", systemName)

	// assemble
	M, err := o.assemble(sys, "lumped")
	if err != nil {
		return
	}

	// solver
	pair, err = o.newPair(M, M, o.linsol.Lumped)
	if err != nil {
		return
	}
	o.lumped[systemName] = pair
	return
}

// BuildDiagonalL2MassMatrix returns the lumped mass of a system as a vector. Constraints are not
// applied; thus this vector is only valid for systems without constraints.
func (o *Projector) BuildDiagonalL2MassMatrix(systemName string) (diag *Vector, err error) {

	// cached
	if diag, ok := o.diagonal[systemName]; ok {
		return diag, nil
	}
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	o.log("> Building diagonal mass vector of system %q\n", systemName)

	// assemble
	diag = sys.Sol.ZeroClone()
	var d la.Vector
	for _, cell := range o.dom.MyCells {
		e, err := o.element("lumped", sys, cell)
		if err != nil {
			return nil, err
		}
		ed, ok := e.(ele.WithDiagonal)
		if !ok {
			return nil, chk.Err("element of cell %d cannot compute mass diagonal", cell.ID)
		}
		if len(d) != e.Nverts() {
			d = la.NewVector(e.Nverts())
		}
		ed.MassDiagonal(d)
		for ivar := range sys.Vars {
			diag.AddVec(d, sys.Dofs(cell.ID, ivar))
		}
	}
	diag.Close()
	o.diagonal[systemName] = diag
	return
}

// ComputeL2Projection solves M ⋅ target = source
//  consistent  -- use the consistent mass matrix; otherwise the lumped one
//  closeTarget -- close target after solution
//  closeSource -- close source before use
//  tol         -- relative tolerance; replaced by option "ksp_rtol" if set
//  maxIts      -- max number of iterations; replaced by option "ksp_max_it" if set
//  converged   -- false if the iterative solver did not converge
// Constraints are enforced on target at the end. Contributions added to target and not yet
// closed are discarded. target and source may be the same vector only when the lumped mass
// matrix is used on a system without constraints.
//
// The option "ksp_type" is read when the solver of a system is built; i.e. it applies until
// ClearCache is called. The options "pc_type" and "ksp_monitor" are read on every solve.
func (o *Projector) ComputeL2Projection(target, source *Vector, systemName string, consistent, closeTarget, closeSource bool, tol float64, maxIts int) (converged bool, err error) {

	// system
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	if target.Size() != sys.Ndofs || source.Size() != sys.Ndofs {
		return false, chk.Err("vectors must have size %d to be projected onto system %q", sys.Ndofs, systemName)
	}

	// source
	if closeSource {
		source.Close()
	}
	if source.Dirty() {
		return false, chk.Err("source vector has contributions that were not closed")
	}
	target.DropPending()

	// direct division by lumped mass
	if !consistent && sys.Cons.NumConstrained() == 0 {
		diag, err := o.BuildDiagonalL2MassMatrix(systemName)
		if err != nil {
			return false, err
		}
		target.PointwiseDivide(source, diag)
		converged = true
		o.log(">> L2 projection onto %q by direct division\n", systemName)

		// solve
	} else {
		var pair *ProjPair
		if consistent {
			pair, err = o.BuildL2ProjectionSolver(systemName)
		} else {
			pair, err = o.BuildLumpedL2ProjectionSolver(systemName)
		}
		if err != nil {
			return
		}
		if target == source {
			return false, chk.Err("target and source must be different vectors")
		}
		if val, found, err := inp.GetReal("ksp_rtol"); err != nil {
			return false, err
		} else if found {
			tol = val
		}
		if val, found, err := inp.GetInt("ksp_max_it"); err != nil {
			return false, err
		} else if found {
			maxIts = val
		}
		reason, its, err := pair.Solver.Solve(target, source, tol, maxIts)
		if err != nil {
			return false, chk.Err("L2 projection onto system %q failed:\n%v", systemName, err)
		}
		converged = reason.Converged()
		o.log(">> L2 projection onto %q: %v after %d iterations\n", systemName, reason, its)
	}

	// target
	if closeTarget {
		target.Close()
	}
	sys.Cons.EnforceExactly(target)
	return
}

// AssembleRHS computes the mass-weighted source of a system and closes rhs
//
//   b_i = ∫ f φ_i dΩ
//
//  fcns -- one function per variable
// Constraints are applied; i.e. contributions to constrained equations are moved to their
// masters and inhomogeneities are taken into account with the consistent element matrix.
func (o *Projector) AssembleRHS(rhs *Vector, systemName string, fcns []dbf.T, t float64) (err error) {
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	if len(fcns) != len(sys.Vars) {
		return chk.Err("system %q needs %d functions; %d given", systemName, len(sys.Vars), len(fcns))
	}
	withCons := sys.Cons.NumConstrained() > 0
	for _, cell := range o.dom.MyCells {
		e, err := o.element("consistent", sys, cell)
		if err != nil {
			return err
		}
		nv := e.Nverts()
		var Me *la.Matrix
		if withCons {
			Me = la.NewMatrix(nv, nv)
			e.MassMatrix(Me)
		}
		for ivar, f := range fcns {
			be := la.NewVector(nv)
			e.AddToRhs(be, f, t)
			eqs := sys.Dofs(cell.ID, ivar)
			if withCons {
				be, eqs = sys.Cons.ConstrainElementVector(be, Me, eqs)
			}
			rhs.AddVec(be, eqs)
		}
	}
	rhs.Close()
	return
}

// L2Error computes the L2 norm of the difference between u and given functions
//
//   error = sqrt(Σ_var ∫ (u_h - f)² dΩ)
//
//  fcns -- one function per variable
func (o *Projector) L2Error(u *Vector, systemName string, fcns []dbf.T, t float64) (res float64, err error) {
	sys, err := o.system(systemName)
	if err != nil {
		return
	}
	if len(fcns) != len(sys.Vars) {
		return 0, chk.Err("system %q needs %d functions; %d given", systemName, len(sys.Vars), len(fcns))
	}
	var ue la.Vector
	for _, cell := range o.dom.MyCells {
		e, err := o.element("consistent", sys, cell)
		if err != nil {
			return 0, err
		}
		ee, ok := e.(ele.CanComputeError)
		if !ok {
			return 0, chk.Err("element of cell %d cannot compute errors", cell.ID)
		}
		if len(ue) != e.Nverts() {
			ue = la.NewVector(e.Nverts())
		}
		for ivar, f := range fcns {
			for m, eq := range sys.Dofs(cell.ID, ivar) {
				ue[m] = u.Data[eq]
			}
			res += ee.SquaredError(ue, f, t)
		}
	}
	res = math.Sqrt(o.dom.Comm.SumScalar(res))
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// system returns a system with DOFs
func (o *Projector) system(name string) (sys *System, err error) {
	sys, err = o.dom.GetSystem(name)
	if err != nil {
		return
	}
	if sys.Ndofs == 0 {
		return nil, chk.Err("system %q has no DOFs", name)
	}
	return
}

// element returns a reinitialised element of a cell
func (o *Projector) element(kind string, sys *System, cell *msh.Cell) (e ele.Element, err error) {
	rule, err := o.rules.Get(sys.RuleKey(cell))
	if err != nil {
		return nil, chk.Err("cannot get quadrature rule of cell %d:\n%v", cell.ID, err)
	}
	e, err = ele.New(kind, cell, rule)
	if err != nil {
		return
	}
	err = e.Reinit()
	if err != nil {
		return nil, chk.Err("cannot reinitialise element of cell %d:\n%v", cell.ID, err)
	}
	return
}

// assemble assembles the consistent or lumped mass matrix of a system
func (o *Projector) assemble(sys *System, kind string) (M *Matrix, err error) {
	M = NewMatrix(o.dom.Comm, sys.Ndofs)
	M.SPD = true
	M.SymmetryEternal = true
	M.IgnoreZeroEntries = true
	var Me *la.Matrix
	for _, cell := range o.dom.MyCells {
		e, err := o.element(kind, sys, cell)
		if err != nil {
			return nil, err
		}
		nv := e.Nverts()
		if Me == nil || Me.M != nv {
			Me = la.NewMatrix(nv, nv)
		}
		e.MassMatrix(Me)
		for ivar := range sys.Vars {
			Mc, ceqs := sys.Cons.ConstrainElementMatrix(Me, sys.Dofs(cell.ID, ivar))
			if Mc == Me {
				Mc = Me.GetCopy()
			}
			ele.PruneRoundoff(Mc)
			M.AddMatrix(Mc, ceqs)
		}
	}
	M.Close()
	return
}

// zeroDisplRows returns the constrained equations on sides (of cells in any processor) with
// zero-displacement boundary ids. Collective
func (o *Projector) zeroDisplRows(sys *System) (rows []int) {
	flags := make([]int, sys.Ndofs)
	for _, cell := range o.dom.MyCells {
		for side := 0; side < o.dom.NumSides(cell); side++ {
			if o.dom.HasNeighbor(cell, side) {
				continue
			}
			mask := 0
			for _, id := range o.dom.BoundaryIDs(cell, side) {
				mask |= id
			}
			for ivar := 0; ivar < len(sys.Vars) && ivar < 3; ivar++ {
				if mask&ZeroDisplBit(ivar) == 0 {
					continue
				}
				for _, v := range o.dom.SideVerts(cell, side) {
					eq := sys.Vid2node[v].GetEq(sys.Vars[ivar])
					if sys.Cons.IsConstrained(eq) {
						flags[eq] = 1
					}
				}
			}
		}
	}
	o.dom.Comm.AllReduceMaxI(flags)
	for eq, flag := range flags {
		if flag > 0 {
			rows = append(rows, eq)
		}
	}
	return
}

// newPair allocates and initialises a solver
func (o *Projector) newPair(A, P *Matrix, name string) (pair *ProjPair, err error) {
	name = inp.GetString("ksp_type", name)
	lis, err := NewLinSolver(name)
	if err != nil {
		return
	}
	lis.SetReusePreconditioner(true)
	err = lis.Init(A, P, o.linsol)
	if err != nil {
		return nil, chk.Err("cannot initialise %q solver:\n%v", name, err)
	}
	return &ProjPair{lis, A}, nil
}

// log prints a message in the root processor if logging is enabled
func (o *Projector) log(msg string, prm ...interface{}) {
	if o.logging && o.dom.Comm.Root() {
		io.Pf(msg, prm...)
	}
}
