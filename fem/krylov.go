// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/xj361685640/IBAMR/inp"
	"gonum.org/v1/gonum/floats"
)

// Krylov implements preconditioned Krylov solvers for symmetric positive-definite systems
//  "cg" -- conjugate gradients
//  "cr" -- conjugate residuals
//
//  Vectors are replicated; thus only matrix-vector products are collective.
type Krylov struct {
	Kind    string  // "cg" or "cr"
	Pc      string  // preconditioner: "jacobi" or "none"
	Atol    float64 // absolute tolerance
	Dtol    float64 // divergence tolerance
	Monitor bool    // print residual norms
	A       *Matrix // matrix
	P       *Matrix // matrix used to build the preconditioner

	// preconditioner
	reuse     bool    // reuse preconditioner
	pcDefault string  // preconditioner when "pc_type" is not set
	invDiag   *Vector // inverse of diagonal of P
	pcReady   bool    // invDiag is computed

	// workspace
	r, z, p, q, Ap, Az *Vector
}

// add solvers to factory
func init() {
	allocators["cg"] = func() LinSolver { return &Krylov{Kind: "cg"} }
	allocators["cr"] = func() LinSolver { return &Krylov{Kind: "cr"} }
}

// Init initialises solver
func (o *Krylov) Init(A, P *Matrix, prms *inp.LinSolData) (err error) {
	if A.N == 0 {
		return chk.Err("cannot initialise %s solver with empty matrix", o.Kind)
	}
	if P == nil {
		P = A
	}
	if P.N != A.N {
		return chk.Err("matrix and preconditioning matrix must have the same size. %d != %d", A.N, P.N)
	}
	if !A.Closed() || !P.Closed() {
		return chk.Err("matrices must be closed before initialising %s solver", o.Kind)
	}
	if !A.SPD {
		return chk.Err("%s solver requires a symmetric positive-definite matrix", o.Kind)
	}
	o.A, o.P = A, P
	o.Pc, o.Atol, o.Dtol = "jacobi", 1e-50, 1e5
	if prms != nil {
		o.Pc, o.Atol, o.Dtol = prms.Pc, prms.Atol, prms.Dtol
	}
	if o.Pc == "" {
		o.Pc = "jacobi"
	}
	if o.Dtol <= 0 {
		o.Dtol = 1e5
	}
	o.pcDefault = o.Pc
	err = o.readOptions()
	if err != nil {
		return
	}
	x := NewVector(A.comm, A.N)
	o.r, o.z, o.p, o.q, o.Ap, o.Az = x, x.ZeroClone(), x.ZeroClone(), x.ZeroClone(), x.ZeroClone(), x.ZeroClone()
	o.invDiag = x.ZeroClone()
	o.pcReady = false
	return
}

// SetReusePreconditioner keeps the preconditioner computed by the first Solve
func (o *Krylov) SetReusePreconditioner(reuse bool) { o.reuse = reuse }

// Free frees memory
func (o *Krylov) Free() {
	o.r, o.z, o.p, o.q, o.Ap, o.Az, o.invDiag = nil, nil, nil, nil, nil, nil, nil
	o.pcReady = false
}

// Solve solves A⋅x = b with zero initial guess
func (o *Krylov) Solve(x, b *Vector, rtol float64, maxIt int) (reason ConvergedReason, its int, err error) {

	// check
	if o.A == nil || o.r == nil {
		return 0, 0, chk.Err("%s solver must be initialised first", o.Kind)
	}
	if x.Size() != o.A.N || b.Size() != o.A.N {
		return 0, 0, chk.Err("vectors must have size %d", o.A.N)
	}
	if b.Dirty() {
		return 0, 0, chk.Err("right-hand side vector must be closed")
	}
	if x == b {
		return 0, 0, chk.Err("target and source must be different vectors")
	}

	// preconditioner
	pc := o.Pc
	err = o.readOptions()
	if err != nil {
		return
	}
	if !o.pcReady || !o.reuse || o.Pc != pc {
		o.setPreconditioner()
	}

	// zero right-hand side
	x.Fill(0)
	bnorm := b.Norm()
	if bnorm == 0 {
		return ConvergedAtol, 0, nil
	}

	// r = b - A⋅x = b
	o.r.Copy(b)
	switch o.Kind {
	case "cg":
		reason, its = o.cg(x, bnorm, rtol, maxIt)
	case "cr":
		reason, its = o.cr(x, bnorm, rtol, maxIt)
	default:
		err = chk.Err("Krylov method %q is not available", o.Kind)
	}
	return
}

// cg runs the preconditioned conjugate gradients method
func (o *Krylov) cg(x *Vector, bnorm, rtol float64, maxIt int) (reason ConvergedReason, its int) {
	r, z, p, Ap := o.r.Data, o.z.Data, o.p.Data, o.Ap.Data
	o.applyPc(z, r)
	copy(p, z)
	rz := floats.Dot(r, z)
	if reason = o.check(0, bnorm, rtol); reason != 0 {
		return
	}
	for its = 1; its <= maxIt; its++ {
		o.A.MulVec(o.Ap, o.p)
		pAp := floats.Dot(p, Ap)
		if pAp < 0 {
			return DivergedIndefiniteMat, its
		}
		if pAp == 0 {
			return DivergedBreakdown, its
		}
		α := rz / pAp
		floats.AddScaled(x.Data, α, p)
		floats.AddScaled(r, -α, Ap)
		if reason = o.check(its, bnorm, rtol); reason != 0 {
			return
		}
		o.applyPc(z, r)
		rzNew := floats.Dot(r, z)
		if rzNew < 0 {
			return DivergedIndefinitePc, its
		}
		β := rzNew / rz
		floats.AddScaledTo(p, z, β, p)
		rz = rzNew
	}
	return DivergedIts, maxIt
}

// cr runs the preconditioned conjugate residuals method
func (o *Krylov) cr(x *Vector, bnorm, rtol float64, maxIt int) (reason ConvergedReason, its int) {
	r, z, p, q, Ap, Az := o.r.Data, o.z.Data, o.p.Data, o.q.Data, o.Ap.Data, o.Az.Data
	o.applyPc(z, r)
	copy(p, z)
	o.A.MulVec(o.Az, o.z)
	copy(Ap, Az)
	ρ := floats.Dot(z, Az)
	if reason = o.check(0, bnorm, rtol); reason != 0 {
		return
	}
	if ρ < 0 {
		return DivergedIndefiniteMat, 0
	}
	for its = 1; its <= maxIt; its++ {
		o.applyPc(q, Ap)
		den := floats.Dot(Ap, q)
		if den < 0 {
			return DivergedIndefinitePc, its
		}
		if den == 0 || ρ == 0 {
			return DivergedBreakdown, its
		}
		α := ρ / den
		floats.AddScaled(x.Data, α, p)
		floats.AddScaled(r, -α, Ap)
		floats.AddScaled(z, -α, q)
		if reason = o.check(its, bnorm, rtol); reason != 0 {
			return
		}
		o.A.MulVec(o.Az, o.z)
		ρNew := floats.Dot(z, Az)
		if ρNew < 0 {
			return DivergedIndefiniteMat, its
		}
		β := ρNew / ρ
		floats.AddScaledTo(p, z, β, p)
		floats.AddScaledTo(Ap, Az, β, Ap)
		ρ = ρNew
	}
	return DivergedIts, maxIt
}

// check checks the residual norm; returns 0 if iterations must continue
func (o *Krylov) check(its int, bnorm, rtol float64) ConvergedReason {
	rnorm := o.r.Norm()
	if o.Monitor {
		io.Pf("%4d KSP %s residual norm %23.15e\n", its, o.Kind, rnorm)
	}
	switch {
	case math.IsNaN(rnorm) || math.IsInf(rnorm, 0):
		return DivergedNanOrInf
	case rnorm <= rtol*bnorm:
		return ConvergedRtol
	case rnorm <= o.Atol:
		return ConvergedAtol
	case rnorm >= o.Dtol*bnorm:
		return DivergedDtol
	}
	return 0
}

// setPreconditioner computes the inverse of the diagonal of P
func (o *Krylov) setPreconditioner() {
	if o.Pc == "jacobi" {
		o.P.Diagonal(o.invDiag)
		for i, d := range o.invDiag.Data {
			if d == 0 {
				o.invDiag.Data[i] = 1
				continue
			}
			o.invDiag.Data[i] = 1.0 / d
		}
	}
	o.pcReady = true
}

// readOptions reads "pc_type" and "ksp_monitor"
func (o *Krylov) readOptions() error {
	o.Pc = inp.GetString("pc_type", o.pcDefault)
	if o.Pc != "jacobi" && o.Pc != "none" {
		return chk.Err("preconditioner %q is not available", o.Pc)
	}
	o.Monitor = inp.GetBool("ksp_monitor", false) && o.A.comm.Root()
	return nil
}

// applyPc computes z = B⁻¹ ⋅ r
func (o *Krylov) applyPc(z, r []float64) {
	if o.Pc == "none" {
		copy(z, r)
		return
	}
	floats.MulTo(z, o.invDiag.Data, r)
}
