// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	m, err := ReadMsh("data", "square2x2.msh")
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", m.Ndim, 2)
	chk.Int(tst, "nverts", len(m.Verts), 9)
	chk.Int(tst, "ncells", len(m.Cells), 4)
	chk.Array(tst, "xmin", 1e-17, m.Xmin, []float64{0, 0})
	chk.Array(tst, "xmax", 1e-17, m.Xmax, []float64{1, 1})
	chk.Ints(tst, "left", m.Boundary(40), []int{0, 3, 6})
	chk.Ints(tst, "right", m.Boundary(20), []int{2, 5, 8})

	_, err = ReadMsh("data", "")
	if err == nil {
		tst.Errorf("empty filename should have failed\n")
	}
	_, err = ReadMsh("data", "nonexistent.msh")
	if err == nil {
		tst.Errorf("nonexistent mesh file should have failed\n")
	}
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/square.sim", "", false, false)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	if chk.Verbose {
		io.Pforan("%v\n", sim.Functions)
	}

	// data
	chk.String(tst, sim.Key, "square")
	chk.String(tst, sim.DirOut, "/tmp/ibproj/inp")
	chk.Int(tst, "ndim", sim.Ndim, 2)
	if !sim.Data.Logging {
		tst.Errorf("logging should be enabled\n")
	}

	// boundary ids
	chk.Ints(tst, "ids @ 40", sim.GetBryIds(40), []int{0x100})
	chk.Ints(tst, "ids @ 10", sim.GetBryIds(10), []int{0x200})
	chk.Ints(tst, "ids @ 30", sim.GetBryIds(30), nil)

	// systems
	chk.Int(tst, "nsys", len(sim.Systems), 2)
	scalar := sim.GetSystem("scalar")
	if scalar == nil {
		tst.Errorf("cannot find system \"scalar\"\n")
		return
	}
	chk.String(tst, scalar.Quad.Family, "gauss")
	chk.Int(tst, "scalar: order", scalar.Quad.Order, 0)
	vel := sim.GetSystem("velocity")
	chk.Strings(tst, "velocity: vars", vel.Vars, []string{"ux", "uy"})
	chk.Int(tst, "velocity: order", vel.Quad.Order, 3)
	if !vel.ZeroDispl {
		tst.Errorf("velocity system should have zerodispl == true\n")
	}
	chk.Int(tst, "velocity: ncons", len(vel.Constraints), 1)
	chk.Ints(tst, "periodic tags", vel.Constraints[0].Tags, []int{20, 40})
	chk.Array(tst, "periodic offset", 1e-17, vel.Constraints[0].Offset, []float64{-1, 0})
	if sim.GetSystem("pressure") != nil {
		tst.Errorf("system \"pressure\" should not exist\n")
	}

	// linear solver
	chk.String(tst, sim.LinSol.Consistent, "cr")
	chk.String(tst, sim.LinSol.Lumped, "cg")
	chk.String(tst, sim.LinSol.Pc, "jacobi")
	chk.Float64(tst, "atol", 1e-17, sim.LinSol.Atol, 1e-50)

	// projections
	chk.Int(tst, "nprojections", len(sim.Projections), 2)
	chk.Float64(tst, "tol0", 1e-17, sim.Projections[0].Tol, 1e-12)
	chk.Int(tst, "maxits0", sim.Projections[0].MaxIts, 1000)
	chk.Float64(tst, "tol1", 1e-17, sim.Projections[1].Tol, 1e-10)
	if sim.Projections[1].Consistent {
		tst.Errorf("second projection should use the lumped mass matrix\n")
	}

	// functions
	fcns, err := sim.Functions.GetList(sim.Projections[1].Sources)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}
	x := []float64{0.5, 0.25}
	chk.Float64(tst, "lin(x)", 1e-15, fcns[0].F(0, x), 1.0)
	chk.Float64(tst, "zero(x)", 1e-15, fcns[1].F(0, x), 0.0)
	_, err = sim.Functions.Get("unknown")
	if err == nil {
		tst.Errorf("unknown function should have failed\n")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	_, err := ReadSim("data/badproj.sim", "", false, false)
	if err == nil {
		tst.Errorf("projection with wrong number of sources should have failed\n")
		return
	}
	io.Pforan("error (ok) = %v\n", err)

	_, err = ReadSim("data/nonexistent.sim", "", false, false)
	if err == nil {
		tst.Errorf("nonexistent file should have failed\n")
	}
}

func Test_options01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("options01")

	ClearOptions()
	defer ClearOptions()

	rest := ParseOptions([]string{"-ksp_rtol=1e-9", "data.sim", "-ksp_max_it=33", "--ksp_monitor", "-ksp_type=cg"})
	chk.Strings(tst, "rest", rest, []string{"data.sim"})

	rtol, found, err := GetReal("ksp_rtol")
	if !found || err != nil {
		tst.Errorf("cannot get ksp_rtol: found=%v err=%v\n", found, err)
		return
	}
	chk.Float64(tst, "rtol", 1e-17, rtol, 1e-9)

	maxit, found, err := GetInt("ksp_max_it")
	if !found || err != nil {
		tst.Errorf("cannot get ksp_max_it: found=%v err=%v\n", found, err)
		return
	}
	chk.Int(tst, "maxit", maxit, 33)

	_, found, _ = GetReal("ksp_atol")
	if found {
		tst.Errorf("ksp_atol should not be set\n")
	}
	if !GetBool("ksp_monitor", false) {
		tst.Errorf("ksp_monitor should be true\n")
	}
	chk.String(tst, GetString("ksp_type", "cr"), "cg")
	chk.String(tst, GetString("pc_type", "jacobi"), "jacobi")

	SetOption("ksp_max_it", "abc")
	_, _, err = GetInt("ksp_max_it")
	if err == nil {
		tst.Errorf("parsing \"abc\" as integer should have failed\n")
	}
	io.Pforan("%s", ListOptions())
}

func Test_options02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("options02")

	ClearOptions()
	defer ClearOptions()

	sim, err := ReadSim("data/square.sim", "", false, false)
	if err != nil {
		tst.Errorf("test failed:\n%v", err)
		return
	}

	// command line wins
	SetOption("ksp_max_it", "7")
	sim.ApplyOptions()
	maxit, _, _ := GetInt("ksp_max_it")
	chk.Int(tst, "maxit", maxit, 7)

	// .sim file otherwise
	ClearOptions()
	sim.ApplyOptions()
	maxit, _, _ = GetInt("ksp_max_it")
	chk.Int(tst, "maxit", maxit, 500)
}
