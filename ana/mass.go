// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements closed-form mass matrices and reference fields
package ana

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/utl"
)

// MassTri3 returns the consistent mass matrix of a linear triangle
//
//           area  | 2 1 1 |
//   M   =  ————— ⋅| 1 2 1 |
//            12   | 1 1 2 |
func MassTri3(area float64) (M [][]float64) {
	return simplexMass(3, area/12.0)
}

// MassTet4 returns the consistent mass matrix of a linear tetrahedron
//
//            vol  | 2 1 1 1 |
//   M   =  ————— ⋅| 1 2 1 1 |
//            20   | 1 1 2 1 |
//                 | 1 1 1 2 |
func MassTet4(vol float64) (M [][]float64) {
	return simplexMass(4, vol/20.0)
}

// MassTensor returns the consistent mass matrix of a lin2, qua4 or hex8 cell aligned with the
// axes and with edge lengths h. It is the tensor product of the 1D matrix (h/6)[2 1; 1 2].
//
//   e.g. for qua4 with h = {a, b}:
//
//            a b  | 4 2 1 2 |
//   M   =  ————— ⋅| 2 4 2 1 |
//            36   | 1 2 4 2 |
//                 | 2 1 2 4 |
func MassTensor(cellType int, h []float64) (M [][]float64) {
	switch cellType {
	case msh.TypeLin2, msh.TypeQua4, msh.TypeHex8:
	default:
		chk.Panic("MassTensor: cell type %q is not available", msh.TypeIndexToKey[cellType])
	}
	ndim := msh.GeomNdim[cellType]
	if len(h) != ndim {
		chk.Panic("MassTensor: number of edge lengths must be %d. %d is invalid", ndim, len(h))
	}
	nat := msh.NatCoords[cellType]
	nv := msh.NumVerts[cellType]
	M = utl.Alloc(nv, nv)
	for m := 0; m < nv; m++ {
		for n := 0; n < nv; n++ {
			M[m][n] = 1.0
			for d := 0; d < ndim; d++ {
				if nat[d][m] == nat[d][n] {
					M[m][n] *= 2.0 * h[d] / 6.0
				} else {
					M[m][n] *= h[d] / 6.0
				}
			}
		}
	}
	return
}

// LumpedUniform returns the lumped diagonal of cells whose vertices share the volume equally;
// i.e. linear simplices and axis-aligned lin2, qua4 and hex8 cells
func LumpedUniform(nverts int, vol float64) (d []float64) {
	d = make([]float64, nverts)
	for i := 0; i < nverts; i++ {
		d[i] = vol / float64(nverts)
	}
	return
}

// simplexMass returns c ⋅ (I + 1 1ᵀ)
func simplexMass(n int, c float64) (M [][]float64) {
	M = utl.Alloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			M[i][j] = c
		}
		M[i][i] = 2.0 * c
	}
	return
}
