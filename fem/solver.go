// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/xj361685640/IBAMR/inp"
)

// ConvergedReason tells why a linear solver stopped. Positive values mean convergence
type ConvergedReason int

// reasons
const (
	ConvergedRtol         ConvergedReason = 2   // residual norm below rtol⋅‖b‖
	ConvergedAtol         ConvergedReason = 3   // residual norm below atol
	ConvergedIts          ConvergedReason = 4   // direct solvers
	DivergedIts           ConvergedReason = -3  // max number of iterations reached
	DivergedDtol          ConvergedReason = -4  // residual norm above dtol⋅‖b‖
	DivergedBreakdown     ConvergedReason = -5  // division by zero
	DivergedIndefinitePc  ConvergedReason = -8  // preconditioner is not positive-definite
	DivergedNanOrInf      ConvergedReason = -9  // residual norm is NaN or Inf
	DivergedIndefiniteMat ConvergedReason = -10 // matrix is not positive-definite
)

// Converged tells whether reason means convergence
func (o ConvergedReason) Converged() bool { return o > 0 }

// String returns the name of reason
func (o ConvergedReason) String() string {
	switch o {
	case ConvergedRtol:
		return "CONVERGED_RTOL"
	case ConvergedAtol:
		return "CONVERGED_ATOL"
	case ConvergedIts:
		return "CONVERGED_ITS"
	case DivergedIts:
		return "DIVERGED_ITS"
	case DivergedDtol:
		return "DIVERGED_DTOL"
	case DivergedBreakdown:
		return "DIVERGED_BREAKDOWN"
	case DivergedIndefinitePc:
		return "DIVERGED_INDEFINITE_PC"
	case DivergedNanOrInf:
		return "DIVERGED_NANORINF"
	case DivergedIndefiniteMat:
		return "DIVERGED_INDEFINITE_MAT"
	}
	return "UNKNOWN"
}

// LinSolver solves A⋅x = b using P to build the preconditioner
type LinSolver interface {

	// Init initialises solver. A and P must be closed
	Init(A, P *Matrix, prms *inp.LinSolData) (err error)

	// Solve solves the system. b must be closed
	Solve(x, b *Vector, rtol float64, maxIt int) (reason ConvergedReason, its int, err error)

	// SetReusePreconditioner keeps the preconditioner computed by the first Solve
	SetReusePreconditioner(reuse bool)

	// Free frees memory
	Free()
}

// allocators holds all available linear solvers
var allocators = make(map[string]func() LinSolver)

// NewLinSolver returns a new linear solver
//  name -- "cr", "cg", "umfpack" or "mumps"
func NewLinSolver(name string) (LinSolver, error) {
	if alloc, ok := allocators[name]; ok {
		return alloc(), nil
	}
	return nil, chk.Err("cannot find linear solver named %q", name)
}
