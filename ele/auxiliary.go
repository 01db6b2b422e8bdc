// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/xj361685640/IBAMR/shp"
)

// RoundoffFactor defines the relative size of entries removed by PruneRoundoff
const RoundoffFactor = 1e-12

// MassMatrix computes the element mass matrix
//
//          nip-1
//   M(i,j) = Σ  φi(ip) φj(ip) JxW(ip)
//          ip=0
//
//  NOTE: rule.Reinit must be called first
func MassMatrix(M *la.Matrix, rule *shp.Rule) {
	M.Fill(0)
	for ip := 0; ip < rule.Npts; ip++ {
		S := rule.Phi[ip]
		for i := 0; i < rule.Nverts; i++ {
			for j := 0; j < rule.Nverts; j++ {
				M.Add(i, j, S[i]*S[j]*rule.JxW[ip])
			}
		}
	}
}

// Lump replaces M by its trace-normalised diagonal approximation
//
//   M(i,i) := vol ⋅ M(i,i) / tr(M)   and   M(i,j) := 0 for i ≠ j
//
//  where vol = Σ M(i,j) equals the volume of the cell because the basis is a partition of unity
func Lump(M *la.Matrix) (vol float64) {
	tr := 0.0
	for i := 0; i < M.M; i++ {
		tr += M.Get(i, i)
		for j := 0; j < M.N; j++ {
			vol += M.Get(i, j)
		}
	}
	for i := 0; i < M.M; i++ {
		for j := 0; j < M.N; j++ {
			if i == j {
				M.Set(i, i, vol*M.Get(i, i)/tr)
			} else {
				M.Set(i, j, 0)
			}
		}
	}
	return
}

// LumpedVector computes d[i] = vol ⋅ M(i,i) / tr(M) without modifying M
func LumpedVector(d la.Vector, M *la.Matrix) {
	tr, vol := 0.0, 0.0
	for i := 0; i < M.M; i++ {
		tr += M.Get(i, i)
		for j := 0; j < M.N; j++ {
			vol += M.Get(i, j)
		}
	}
	for i := 0; i < M.M; i++ {
		d[i] = vol * M.Get(i, i) / tr
	}
}

// PruneRoundoff zeroes the off-diagonal entries of M smaller (in absolute value) than
// RoundoffFactor times the smallest diagonal entry. The diagonal is always kept.
func PruneRoundoff(M *la.Matrix) {
	minDiag := math.MaxFloat64
	n := M.M
	if M.N < n {
		n = M.N
	}
	for i := 0; i < n; i++ {
		minDiag = math.Min(minDiag, M.Get(i, i))
	}
	for i := 0; i < M.M; i++ {
		for j := 0; j < M.N; j++ {
			if i == j {
				continue
			}
			if math.Abs(M.Get(i, j)) < RoundoffFactor*minDiag {
				M.Set(i, j, 0)
			}
		}
	}
}

// Source adds the element load vector of a scalar function to b
//
//         nip-1
//   b[i] += Σ  f(t, x(ip)) φi(ip) JxW(ip)
//         ip=0
//
//  x -- scratch array with at least 3 entries
//  NOTE: rule.Reinit must be called first
func Source(b la.Vector, rule *shp.Rule, f dbf.T, t float64, x []float64) {
	for ip := 0; ip < rule.Npts; ip++ {
		copy(x, rule.Xip[ip])
		fx := f.F(t, x)
		for i := 0; i < rule.Nverts; i++ {
			b[i] += fx * rule.Phi[ip][i] * rule.JxW[ip]
		}
	}
}
