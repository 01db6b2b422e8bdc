// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements element-level kernels for L2 projections
package ele

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Element defines what all projection elements must implement
type Element interface {

	// information and initialisation
	Id() int             // returns the cell Id
	Nverts() int         // number of vertices == number of basis functions per variable
	Reinit() (err error) // computes Jacobian-weighted weights of the cell
	Volume() float64     // volume of cell; available after Reinit

	// element matrices and vectors; one scalar variable; Reinit must be called first
	MassMatrix(M *la.Matrix)                 // computes the (consistent or lumped) mass matrix
	AddToRhs(b la.Vector, f dbf.T, t float64) // adds ∫ f φ_i dΩ to b
}

// WithDiagonal defines elements with a diagonal approximation of the mass matrix
type WithDiagonal interface {
	MassDiagonal(d la.Vector) // computes the lumped mass diagonal
}

// CanComputeError defines elements that compute the squared L2 error of an interpolated field
type CanComputeError interface {
	SquaredError(u la.Vector, f dbf.T, t float64) float64 // ∫ (Σ u_i φ_i - f)² dΩ
}
