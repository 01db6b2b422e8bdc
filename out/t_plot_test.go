// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/stretchr/testify/assert"
	"github.com/xj361685640/IBAMR/fem"
	"github.com/xj361685640/IBAMR/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01. points along lines")

	// run projections
	defer inp.ClearOptions()
	main, err := fem.NewMain("data/square.sim", "", true, false, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// start post-processing
	err = Start("data/square.sim", 0)
	if err != nil {
		tst.Errorf("Start failed:\n%v", err)
		return
	}
	chk.Int(tst, "number of points", len(Vid2pt), 9)

	// define entities
	assert.NoError(tst, Define("bottom", AlongX{0}))
	assert.NoError(tst, Define("left", AlongY{0}))
	assert.NoError(tst, Define("corner", At{1, 1}))
	assert.NoError(tst, Define("diagonal", Along{0, 0, 1, 1}))
	assert.Error(tst, Define("outside", At{5, 5}))

	// u = 2 x + y
	x, _, _ := GetXYZ("bottom")
	chk.Array(tst, "x @ bottom", 1e-15, x, []float64{0, 0.5, 1})
	chk.Array(tst, "u @ bottom", 1e-9, GetRes("u", "bottom"), []float64{0, 1, 2})
	_, y, _ := GetXYZ("left")
	chk.Array(tst, "y @ left", 1e-15, y, []float64{0, 0.5, 1})
	chk.Array(tst, "u @ left", 1e-9, GetRes("u", "left"), []float64{0, 0.5, 1})
	chk.Array(tst, "u @ corner", 1e-9, GetRes("u", "corner"), []float64{3})
	chk.Int(tst, "number of points along diagonal", len(Results["diagonal"]), 3)
	chk.Array(tst, "dist @ diagonal", 1e-15, GetDist("diagonal"), []float64{0, 0.7071067811865476, 1.4142135623730951})
	assert.Panics(tst, func() { GetRes("ux", "bottom") })
	assert.Panics(tst, func() { GetRes("u", "top") })

	// plots
	Splot("x-u", "scalar field")
	Plot("x", "u", "bottom", &plt.A{C: "b", M: "o"})
	Plot("x", []float64{0, 1, 2}, "bottom", &plt.A{C: "r", Ls: "--", L: "2x"})
	Splot("u-y", "")
	Plot("u", "y", "left", nil)
	chk.Int(tst, "number of subplots", len(Splots), 2)
	assert.Equal(tst, "$x$", Splots[0].Xlbl)
	assert.Equal(tst, "$u$", Splots[0].Ylbl)
	assert.Panics(tst, func() { Plot("x", []float64{0}, "bottom", nil) })

	if chk.Verbose {
		Draw("/tmp/ibproj/out", "plot01", -1, -1, false, nil)
	}
}

func Test_plot02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot02. vector field")

	defer inp.ClearOptions()
	main, err := fem.NewMain("data/square.sim", "", true, false, chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	err = Start("data/square.sim", 1)
	if err != nil {
		tst.Errorf("Start failed:\n%v", err)
		return
	}
	assert.NoError(tst, Define("left", AlongY{0}))
	assert.NoError(tst, Define("right", AlongY{1}))
	chk.Array(tst, "ux @ left", 1e-17, GetRes("ux", "left"), []float64{0, 0, 0})
	chk.Array(tst, "uy @ right", 1e-15, GetRes("uy", "right"), GetRes("uy", "left"))

	ids := make([]int, 0)
	for _, p := range Results["left"] {
		ids = append(ids, p.Vid)
	}
	assert.NoError(tst, Define("ids", N(ids)))
	chk.Array(tst, "y", 1e-15, GetDist("ids"), []float64{0, 0.5, 1})

	// one style per point
	sty := GetDefaultStyles(Results["left"])
	chk.Int(tst, "number of styles", len(sty), 3)
	for i, p := range Results["left"] {
		assert.Equal(tst, io.Sf("x=%v", p.X), sty[i].L)
	}
	Splot("y-uy", "")
	Plot("y", "uy", "left", &sty[0])
	assert.Equal(tst, sty[0].L, Csplot.Data[0].Style.L)

	if chk.Verbose {
		Draw("/tmp/ibproj/out", "plot02", -1, -1, false, nil)
	}

	assert.Error(tst, Start("data/square.sim", 7))
}
