// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/integrate/quad"
)

// CheckShape checks that basis functions evaluate to 1.0 @ own vertex and 0.0 @ the others
func CheckShape(tst *testing.T, cellType int, tol float64, verbose bool) {

	// auxiliary
	nverts := msh.NumVerts[cellType]
	gndim := msh.GeomNdim[cellType]
	S := la.NewVector(nverts)
	r := la.NewVector(3)

	// loop over all vertices
	errS := 0.0
	for n := 0; n < nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < gndim; i++ {
			r[i] = msh.NatCoords[cellType][i][n]
		}

		// compute function
		msh.Functions[cellType](S, nil, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < nverts; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", msh.TypeIndexToKey[cellType], errS)
		return
	}
}

// CheckPartition checks that basis functions sum up to 1.0 @ all integration points
func CheckPartition(tst *testing.T, rule *Rule, tol float64) {
	for ip := 0; ip < rule.Npts; ip++ {
		sum := 0.0
		for m := 0; m < rule.Nverts; m++ {
			sum += rule.Phi[ip][m]
		}
		if math.Abs(sum-1.0) > tol {
			tst.Errorf("%s: Σφ = %g @ ip %d is not 1\n", rule.Key, sum, ip)
			return
		}
	}
}

// CheckTensorExactness checks that a rule on lin, qua or hex cells integrates all monomials
// r^a s^b t^c with a, b, c <= Order exactly. The reference values come from an independent
// fixed Gauss-Legendre quadrature in 1D.
func CheckTensorExactness(tst *testing.T, rule *Rule, tol float64, verbose bool) {
	p := rule.Key.Order
	ref := make([]float64, p+1)
	for a := 0; a <= p; a++ {
		ea := float64(a)
		ref[a] = quad.Fixed(func(x float64) float64 { return math.Pow(x, ea) }, -1, 1, p+1, quad.Legendre{}, 0)
	}
	nb, nc := 1, 1
	if rule.Gndim > 1 {
		nb = p + 1
	}
	if rule.Gndim > 2 {
		nc = p + 1
	}
	for a := 0; a <= p; a++ {
		for b := 0; b < nb; b++ {
			for c := 0; c < nc; c++ {
				num := 0.0
				for _, pt := range rule.P {
					num += math.Pow(pt[0], float64(a)) * math.Pow(pt[1], float64(b)) * math.Pow(pt[2], float64(c)) * pt[3]
				}
				ana := ref[a]
				if rule.Gndim > 1 {
					ana *= ref[b]
				}
				if rule.Gndim > 2 {
					ana *= ref[c]
				}
				if verbose {
					io.Pf("%s: r^%d s^%d t^%d: ana = %23.15e  num = %23.15e\n", rule.Key, a, b, c, ana, num)
				}
				if math.Abs(num-ana) > tol {
					tst.Errorf("%s: integral of r^%d s^%d t^%d failed: %g != %g\n", rule.Key, a, b, c, num, ana)
					return
				}
			}
		}
	}
}
