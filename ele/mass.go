// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/la"
	"github.com/xj361685640/IBAMR/shp"
)

// Mass implements the mass element of one cell
type Mass struct {
	Cell   *msh.Cell // the cell
	Rule   *shp.Rule // integration points and basis (shared by cells of the same type)
	Lumped bool      // use the trace-normalised diagonal approximation

	// scratchpad
	x  []float64  // real coordinates of integration point [3]
	me *la.Matrix // consistent mass matrix; used by MassDiagonal
}

// register element
func init() {

	// information allocator
	info := func(lumped bool) InfoFuncType {
		return func(cell *msh.Cell, vars []string) *Info {
			nverts := msh.NumVerts[cell.TypeIndex]
			o := &Info{Dofs: make([][]string, nverts), Diagonal: lumped}
			for m := 0; m < nverts; m++ {
				o.Dofs[m] = vars
			}
			return o
		}
	}
	SetInfoFunc("consistent", info(false))
	SetInfoFunc("lumped", info(true))

	// element allocators
	SetAllocator("consistent", func(cell *msh.Cell, rule *shp.Rule) Element {
		return newMass(cell, rule, false)
	})
	SetAllocator("lumped", func(cell *msh.Cell, rule *shp.Rule) Element {
		return newMass(cell, rule, true)
	})
}

// newMass allocates a new mass element
func newMass(cell *msh.Cell, rule *shp.Rule, lumped bool) *Mass {
	return &Mass{
		Cell:   cell,
		Rule:   rule,
		Lumped: lumped,
		x:      make([]float64, 3),
		me:     la.NewMatrix(rule.Nverts, rule.Nverts),
	}
}

// Id returns the cell Id
func (o *Mass) Id() int { return o.Cell.ID }

// Nverts returns the number of vertices
func (o *Mass) Nverts() int { return o.Rule.Nverts }

// Reinit computes the Jacobian-weighted weights of the cell
func (o *Mass) Reinit() (err error) {
	return o.Rule.Reinit(o.Cell.X)
}

// Volume returns the volume of cell
func (o *Mass) Volume() float64 { return o.Rule.Vol }

// MassMatrix computes the element mass matrix
func (o *Mass) MassMatrix(M *la.Matrix) {
	MassMatrix(M, o.Rule)
	if o.Lumped {
		Lump(M)
	}
}

// MassDiagonal computes the lumped mass diagonal
func (o *Mass) MassDiagonal(d la.Vector) {
	MassMatrix(o.me, o.Rule)
	LumpedVector(d, o.me)
}

// AddToRhs adds ∫ f φ_i dΩ to b
func (o *Mass) AddToRhs(b la.Vector, f dbf.T, t float64) {
	Source(b, o.Rule, f, t, o.x)
}

// SquaredError returns ∫ (Σ u_i φ_i - f)² dΩ
func (o *Mass) SquaredError(u la.Vector, f dbf.T, t float64) (res float64) {
	for ip := 0; ip < o.Rule.Npts; ip++ {
		uh := 0.0
		for i := 0; i < o.Rule.Nverts; i++ {
			uh += u[i] * o.Rule.Phi[ip][i]
		}
		copy(o.x, o.Rule.Xip[ip])
		e := uh - f.F(t, o.x)
		res += e * e * o.Rule.JxW[ip]
	}
	return
}
