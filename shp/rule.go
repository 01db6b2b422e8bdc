// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements quadrature rules and the evaluation of Lagrange bases on them
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

// Key identifies a quadrature rule together with the basis evaluated on it
type Key struct {
	CellType int    // cell type index; e.g. msh.TypeQua4
	Family   string // quadrature family: "gauss" or "default"
	Order    int    // polynomial degree integrated exactly; <= 0 means DefaultOrder
}

// String returns a short representation of key
func (o Key) String() string {
	return io.Sf("%s:%s:%d", typeKey(o.CellType), o.Family, o.Order)
}

// Rule holds integration points and basis values of one cell type
// and the Jacobian-weighted weights of the last reinitialised cell
type Rule struct {

	// constants
	Key    Key         // key of this rule
	Gndim  int         // geometry space dimension
	Nverts int         // number of vertices == number of basis functions
	Npts   int         // number of integration points
	P      [][]float64 // integration points [npts][4] (r, s, t, weight)
	Phi    []la.Vector // basis functions @ integration points [npts][nverts]

	// scratchpad: computed by Reinit
	JxW []float64   // Jacobian determinant times weight [npts]
	Xip [][]float64 // real coordinates of integration points [npts][gndim]
	Vol float64     // volume of cell: Σ JxW

	// auxiliary
	itg *msh.Integrator // evaluates the basis and the Jacobian
}

// NewRule allocates a new rule for the given key
func NewRule(key Key) (o *Rule, err error) {
	if key.CellType < 0 || key.CellType >= msh.TypeNumMax {
		return nil, chk.Err("cell type index %d is invalid", key.CellType)
	}
	if key.Order <= 0 {
		key.Order = DefaultOrder(key.CellType)
	}
	P, err := points(key)
	if err != nil {
		return
	}
	o = new(Rule)
	o.Key = key
	o.itg = msh.NewIntegrator(key.CellType, P, "")
	o.Gndim = o.itg.Ndim
	o.Nverts = o.itg.Nverts
	o.Npts = o.itg.Npts
	o.P = o.itg.P
	o.Phi = o.itg.ShapeFcns
	o.JxW = make([]float64, o.Npts)
	o.Xip = utl.Alloc(o.Npts, o.Gndim)
	return
}

// Reinit computes JxW, Xip and Vol for the cell with vertex coordinates X [nverts][gndim]
func (o *Rule) Reinit(X *la.Matrix) (err error) {
	if X.M != o.Nverts || X.N < o.Gndim {
		return chk.Err("coordinates matrix must be (%d x %d) for %s. (%d x %d) is invalid", o.Nverts, o.Gndim, o.Key, X.M, X.N)
	}
	o.Vol = 0
	for ip := 0; ip < o.Npts; ip++ {
		var det float64
		if o.Gndim == 1 {
			for m := 0; m < o.Nverts; m++ {
				det += X.Get(m, 0) * o.itg.RefGrads[ip].Get(m, 0)
			}
		} else {
			det, err = o.jacobian(X, ip)
			if err != nil {
				return
			}
		}
		if det <= 0 {
			return chk.Err("Jacobian determinant of %s cell is not positive (%g) at integration point %d", o.Key, det, ip)
		}
		o.JxW[ip] = det * o.P[ip][3]
		o.Vol += o.JxW[ip]
		for i := 0; i < o.Gndim; i++ {
			o.Xip[ip][i] = 0
			for m := 0; m < o.Nverts; m++ {
				o.Xip[ip][i] += o.Phi[ip][m] * X.Get(m, i)
			}
		}
	}
	return
}

// jacobian returns the determinant of the Jacobian; degenerate cells make gosl panic
func (o *Rule) jacobian(X *la.Matrix, ip int) (det float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%s cell is degenerate:\n%v", o.Key, r)
		}
	}()
	o.itg.EvalJacobian(X, ip)
	return o.itg.DetJacobian, nil
}

// DefaultOrder returns 2p+1 where p is the interpolation degree of the cell type
func DefaultOrder(cellType int) int {
	return 2*Degree(cellType) + 1
}

// Degree returns the polynomial degree of the Lagrange basis of a cell type
func Degree(cellType int) int {
	switch cellType {
	case msh.TypeLin2, msh.TypeTri3, msh.TypeQua4, msh.TypeTet4, msh.TypeHex8:
		return 1
	case msh.TypeLin3, msh.TypeTri6, msh.TypeQua8, msh.TypeQua9, msh.TypeTet10, msh.TypeHex20:
		return 2
	case msh.TypeLin4, msh.TypeTri10, msh.TypeQua12, msh.TypeQua16:
		return 3
	}
	return 4
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// typeKey returns the type key of a cell or "unknown"
func typeKey(cellType int) string {
	if cellType < 0 || cellType >= msh.TypeNumMax {
		return "unknown"
	}
	return msh.TypeIndexToKey[cellType]
}

// triangle and tetrahedron rules by maximum polynomial degree integrated exactly
var (
	triRules = []struct {
		degree int
		name   string
	}{{1, "internal_1"}, {2, "internal_3"}, {3, "internal_4"}, {6, "internal_12"}, {8, "internal_16"}}
	tetRules = []struct {
		degree int
		name   string
	}{{1, "internal_1"}, {2, "internal_4"}, {3, "internal_5"}}
)

// points returns the integration points of a rule
func points(key Key) (P [][]float64, err error) {
	kind := msh.TypeIndexToKind[key.CellType]
	switch key.Family {
	case "default":
		return msh.DefaultIntPoints[key.CellType], nil
	case "gauss":
		switch kind {
		case msh.KindLin, msh.KindQua, msh.KindHex:
			return gaussTensor(msh.GeomNdim[key.CellType], (key.Order+2)/2), nil
		case msh.KindTri:
			for _, r := range triRules {
				if key.Order <= r.degree {
					return msh.IntPoints[kind][r.name], nil
				}
			}
		case msh.KindTet:
			for _, r := range tetRules {
				if key.Order <= r.degree {
					return msh.IntPoints[kind][r.name], nil
				}
			}
		}
		return nil, chk.Err("gauss rule of order %d is not available for %q cells", key.Order, typeKey(key.CellType))
	}
	return nil, chk.Err("quadrature family %q is not available", key.Family)
}

// gaussTensor returns the tensor-product Gauss-Legendre rule with n points per direction
func gaussTensor(ndim, n int) (P [][]float64) {
	x, w := num.GaussLegendreXW(-1, 1, n)
	switch ndim {
	case 1:
		for i := 0; i < n; i++ {
			P = append(P, []float64{x[i], 0, 0, w[i]})
		}
	case 2:
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				P = append(P, []float64{x[i], x[j], 0, w[i] * w[j]})
			}
		}
	default:
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					P = append(P, []float64{x[i], x[j], x[k], w[i] * w[j] * w[k]})
				}
			}
		}
	}
	return
}
