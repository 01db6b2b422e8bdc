// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
	"github.com/stretchr/testify/assert"
	"github.com/xj361685640/IBAMR/ana"
	"github.com/xj361685640/IBAMR/shp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newCell returns a cell with given vertex coordinates
func newCell(ctype int, X [][]float64) *msh.Cell {
	return &msh.Cell{
		TypeKey:   msh.TypeIndexToKey[ctype],
		TypeIndex: ctype,
		Gndim:     msh.GeomNdim[ctype],
		X:         la.NewMatrixDeep2(X),
	}
}

// newElem allocates and reinitialises an element
func newElem(tst *testing.T, kind string, cell *msh.Cell, family string, order int) Element {
	rule, err := shp.NewRule(shp.Key{CellType: cell.TypeIndex, Family: family, Order: order})
	if err != nil {
		tst.Fatalf("NewRule failed:\n%v", err)
	}
	e, err := New(kind, cell, rule)
	if err != nil {
		tst.Fatalf("New failed:\n%v", err)
	}
	err = e.Reinit()
	if err != nil {
		tst.Fatalf("Reinit failed:\n%v", err)
	}
	return e
}

func Test_mass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mass01. consistent mass matrices")

	// rectangle
	a, b := 2.0, 0.5
	cell := newCell(msh.TypeQua4, [][]float64{{1, 1}, {1 + a, 1}, {1 + a, 1 + b}, {1, 1 + b}})
	e := newElem(tst, "consistent", cell, "gauss", 0)
	M := la.NewMatrix(4, 4)
	e.MassMatrix(M)
	chk.Deep2(tst, "qua4", 1e-15, M.GetDeep2(), ana.MassTensor(msh.TypeQua4, []float64{a, b}))
	chk.Float64(tst, "qua4: vol", 1e-15, e.Volume(), a*b)

	// triangle
	cell = newCell(msh.TypeTri3, [][]float64{{0, 0}, {3, 0}, {1, 2}})
	e = newElem(tst, "consistent", cell, "gauss", 2)
	M = la.NewMatrix(3, 3)
	e.MassMatrix(M)
	chk.Deep2(tst, "tri3", 1e-15, M.GetDeep2(), ana.MassTri3(3))

	// tetrahedron
	cell = newCell(msh.TypeTet4, [][]float64{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	e = newElem(tst, "consistent", cell, "gauss", 3)
	M = la.NewMatrix(4, 4)
	e.MassMatrix(M)
	chk.Deep2(tst, "tet4", 1e-15, M.GetDeep2(), ana.MassTet4(8.0/6.0))

	// hexahedron
	cell = newCell(msh.TypeHex8, [][]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 2, 0}, {0, 2, 0},
		{0, 0, 3}, {1, 0, 3}, {1, 2, 3}, {0, 2, 3},
	})
	e = newElem(tst, "consistent", cell, "gauss", 3)
	M = la.NewMatrix(8, 8)
	e.MassMatrix(M)
	chk.Deep2(tst, "hex8", 1e-14, M.GetDeep2(), ana.MassTensor(msh.TypeHex8, []float64{1, 2, 3}))

	// line in 1D
	cell = newCell(msh.TypeLin2, [][]float64{{2}, {5}})
	e = newElem(tst, "consistent", cell, "gauss", 0)
	M = la.NewMatrix(2, 2)
	e.MassMatrix(M)
	chk.Deep2(tst, "lin2", 1e-15, M.GetDeep2(), ana.MassTensor(msh.TypeLin2, []float64{3}))
}

func Test_mass02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mass02. symmetry and lumping of distorted cells")

	rnd.Init(1234)
	for k := 0; k < 10; k++ {

		// distorted quadrilateral
		X := [][]float64{
			{rnd.Float64(-0.2, 0.2), rnd.Float64(-0.2, 0.2)},
			{1 + rnd.Float64(-0.2, 0.2), rnd.Float64(-0.2, 0.2)},
			{1 + rnd.Float64(-0.2, 0.2), 1 + rnd.Float64(-0.2, 0.2)},
			{rnd.Float64(-0.2, 0.2), 1 + rnd.Float64(-0.2, 0.2)},
		}
		cell := newCell(msh.TypeQua4, X)
		e := newElem(tst, "consistent", cell, "gauss", 0)
		M := la.NewMatrix(4, 4)
		e.MassMatrix(M)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				chk.Float64(tst, "symmetry", 1e-15, M.Get(i, j), M.Get(j, i))
			}
		}

		// lumped matrix: diagonal summing up to volume
		vol := Lump(M)
		chk.Float64(tst, "vol", 1e-14, vol, e.Volume())
		sum := 0.0
		for i := 0; i < 4; i++ {
			sum += M.Get(i, i)
			for j := 0; j < 4; j++ {
				if i != j {
					chk.Float64(tst, "off-diagonal", 1e-17, M.Get(i, j), 0)
				}
			}
		}
		chk.Float64(tst, "Σ diag", 1e-14, sum, e.Volume())

		// lumped element and diagonal vector must agree
		el := newElem(tst, "lumped", cell, "gauss", 0)
		Ml := la.NewMatrix(4, 4)
		el.MassMatrix(Ml)
		d := la.NewVector(4)
		el.(WithDiagonal).MassDiagonal(d)
		for i := 0; i < 4; i++ {
			chk.Float64(tst, "lumped element", 1e-15, Ml.Get(i, i), M.Get(i, i))
			chk.Float64(tst, "lumped vector", 1e-15, d[i], M.Get(i, i))
		}
	}

	// uniform shares
	cell := newCell(msh.TypeTri3, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	e := newElem(tst, "lumped", cell, "gauss", 0)
	d := la.NewVector(3)
	e.(WithDiagonal).MassDiagonal(d)
	chk.Array(tst, "tri3 lumped", 1e-15, d, ana.LumpedUniform(3, 0.5))
}

func Test_mass03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mass03. pruning of roundoff entries")

	M := la.NewMatrixDeep2([][]float64{
		{2.0, 1e-13, -1.5e-12, 0.1},
		{1e-13, 4.0, 3e-12, -2.1e-12},
		{-1.5e-12, 3e-12, 3.0, 0},
		{0.1, -2.1e-12, 0, 2.5},
	})
	PruneRoundoff(M)
	chk.Deep2(tst, "M", 1e-17, M.GetDeep2(), [][]float64{
		{2.0, 0, 0, 0.1},
		{0, 4.0, 3e-12, -2.1e-12},
		{0, 3e-12, 3.0, 0},
		{0.1, -2.1e-12, 0, 2.5},
	})

	// tiny diagonals are kept
	M = la.NewMatrixDeep2([][]float64{{1e-20, 1e-33}, {1e-33, 1}})
	PruneRoundoff(M)
	chk.Deep2(tst, "M", 1e-40, M.GetDeep2(), [][]float64{{1e-20, 0}, {0, 1}})
}

func Test_mass04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mass04. sources and errors")

	a, b := 2.0, 3.0
	cell := newCell(msh.TypeQua4, [][]float64{{0, 0}, {a, 0}, {a, b}, {0, b}})
	e := newElem(tst, "consistent", cell, "gauss", 0)

	// constant source
	one := &dbf.Cte{C: 1}
	rhs := la.NewVector(4)
	e.AddToRhs(rhs, one, 0)
	chk.Array(tst, "b", 1e-15, rhs, ana.LumpedUniform(4, a*b))

	// linear source: b = M u for u interpolating f
	var field ana.LinearField
	field.Init(dbf.Params{&dbf.P{N: "c", V: 1}, &dbf.P{N: "ax", V: 2}, &dbf.P{N: "ay", V: -1}})
	f := field.Func()
	rhs.Fill(0)
	e.AddToRhs(rhs, f, 0)
	u := la.NewVector(4)
	for m := 0; m < 4; m++ {
		u[m] = field.F(0, cell.X.GetRow(m))
	}
	M := la.NewMatrix(4, 4)
	e.MassMatrix(M)
	Mu := la.NewVector(4)
	la.MatVecMul(Mu, 1, M, u)
	chk.Array(tst, "b = M u", 1e-14, rhs, Mu)

	// squared error
	chk.Float64(tst, "zero error", 1e-28, e.(CanComputeError).SquaredError(u, f, 0), 0)
	u.Fill(0)
	sqerr := e.(CanComputeError).SquaredError(u, one, 0)
	chk.Float64(tst, "error of zero field", 1e-14, sqerr, a*b)
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01")

	cell := newCell(msh.TypeTri3, [][]float64{{0, 0}, {1, 0}, {0, 1}})
	info, err := GetInfo("lumped", cell, []string{"ux", "uy"})
	if err != nil {
		tst.Errorf("GetInfo failed:\n%v", err)
		return
	}
	chk.Int(tst, "nnodes", len(info.Dofs), 3)
	chk.Strings(tst, "dofs @ node 2", info.Dofs[2], []string{"ux", "uy"})
	assert.True(tst, info.Diagonal)

	_, err = GetInfo("stiffness", cell, []string{"u"})
	assert.Error(tst, err)

	rule, err := shp.NewRule(shp.Key{CellType: msh.TypeQua4, Family: "gauss"})
	if err != nil {
		tst.Errorf("NewRule failed:\n%v", err)
		return
	}
	_, err = New("consistent", cell, rule)
	assert.Error(tst, err, "rule of qua4 must not be accepted by tri3")
	_, err = New("stiffness", cell, rule)
	assert.Error(tst, err)

	assert.Panics(tst, func() { SetAllocator("consistent", nil) })
	assert.Panics(tst, func() { GetAllocator("stiffness") })
	assert.NotNil(tst, GetInfoFunc("consistent"))
}
