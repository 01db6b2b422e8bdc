// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/integrate/quad"
)

// LinearField implements the reference field u(x) = c + a⋅x
//
//  An L2 projection onto a space containing all linear functions reproduces it exactly.
type LinearField struct {
	C float64   // constant term
	A []float64 // gradient [ndim]
}

// Init initialises this structure
//  prms -- "c", "ax", "ay" and "az"; missing parameters are zero
func (o *LinearField) Init(prms dbf.Params) {
	o.C = 0
	o.A = make([]float64, 3)
	for _, p := range prms {
		switch p.N {
		case "c":
			o.C = p.V
		case "ax":
			o.A[0] = p.V
		case "ay":
			o.A[1] = p.V
		case "az":
			o.A[2] = p.V
		}
	}
}

// F computes u(x); it also implements the F method of dbf.T
func (o LinearField) F(t float64, x []float64) (u float64) {
	u = o.C
	for i := 0; i < len(x) && i < len(o.A); i++ {
		u += o.A[i] * x[i]
	}
	return
}

// Func returns a dbf function computing u(x)
func (o LinearField) Func() dbf.T {
	return &linearFunc{o}
}

// CheckNodal checks nodal values u[i] @ coordinates X[i]
func (o LinearField) CheckNodal(tst *testing.T, u []float64, X [][]float64, tol float64) {
	ana := make([]float64, len(X))
	for i, x := range X {
		ana[i] = o.F(0, x)
	}
	chk.Array(tst, "u", tol, u, ana)
}

// Integrate computes ∫ f(x) dΩ over the box [xmin, xmax] with n Gauss-Legendre points per
// direction. The box may have 1, 2 or 3 dimensions.
func Integrate(f func(x []float64) float64, xmin, xmax []float64, n int) float64 {
	ndim := len(xmin)
	if ndim < 1 || ndim > 3 || len(xmax) != ndim {
		chk.Panic("Integrate: box must have 1, 2 or 3 dimensions")
	}
	x := make([]float64, ndim)
	var integ func(d int) float64
	integ = func(d int) float64 {
		return quad.Fixed(func(xd float64) float64 {
			x[d] = xd
			if d == ndim-1 {
				return f(x)
			}
			return integ(d + 1)
		}, xmin[d], xmax[d], n, quad.Legendre{}, 0)
	}
	return integ(0)
}

// L2Norm computes sqrt(∫ f² dΩ) over a box
func L2Norm(f func(x []float64) float64, xmin, xmax []float64, n int) float64 {
	return math.Sqrt(Integrate(func(x []float64) float64 {
		v := f(x)
		return v * v
	}, xmin, xmax, n))
}

// linearFunc wraps LinearField as a dbf function
type linearFunc struct {
	LinearField
}

func (o *linearFunc) Init(prms dbf.Params)                    {}
func (o *linearFunc) G(t float64, x []float64) float64        { return 0 }
func (o *linearFunc) H(t float64, x []float64) float64        { return 0 }
func (o *linearFunc) Grad(v []float64, t float64, x []float64) { copy(v, o.A) }
