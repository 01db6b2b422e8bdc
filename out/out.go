// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the post-processing of L2 projections: results are loaded from the
// files written by the fem package and points are selected for plotting
package out

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/xj361685640/IBAMR/fem"
	"github.com/xj361685640/IBAMR/inp"
)

// constants
var (
	TolC = 1e-8 // tolerance to compare x-y-z coordinates
	Ndiv = 20   // bins n-division
)

// Point holds the projected values at one vertex
type Point struct {
	Vid  int                // vertex id
	X    []float64          // coordinates
	Dist float64            // distance from the first point of the set
	Vals map[string]float64 // values
}

// Points is a set of points
type Points []*Point

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Global variables
var (

	// data set by Start
	Sim     *inp.Simulation // simulation data
	Res     *fem.Results    // results of one projection
	Vid2pt  map[int]*Point  // vertex id => point
	NodBins gm.Bins         // bins for nodes; 2D and 3D only
	useBins bool            // bins are available

	// defined entities
	Results ResultsMap // maps aliases => points

	// subplots
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
)

// Start loads the results of the projection with index idx in a simulation file
func Start(simfnpath string, idx int) (err error) {

	// input data
	Sim, err = inp.ReadSim(simfnpath, "", false, false)
	if err != nil {
		return
	}
	if idx < 0 || idx >= len(Sim.Projections) {
		return chk.Err("index of projection %d is out of range. there are %d projections", idx, len(Sim.Projections))
	}

	// results
	fn := fem.ResultsFilename(Sim.Key, Sim.Projections[idx].System, idx)
	Res, err = fem.ReadResults(Sim.DirOut, fn)
	if err != nil {
		return
	}

	// clear previous data
	Vid2pt = make(map[int]*Point)
	Results = make(map[string]Points)
	Splots = make([]*SplotDat, 0)
	Csplot = nil

	// points
	for _, nod := range Res.Nodes {
		Vid2pt[nod.Vid] = &Point{Vid: nod.Vid, X: nod.X, Vals: nod.Values}
	}

	// bins
	m := Sim.Msh
	useBins = m.Ndim > 1
	for i := 0; i < m.Ndim; i++ {
		if m.Xmax[i]-m.Xmin[i] < TolC {
			useBins = false
		}
	}
	if !useBins {
		return
	}
	δ := TolC * 2
	xi := make([]float64, m.Ndim)
	xf := make([]float64, m.Ndim)
	ndiv := make([]int, m.Ndim)
	for i := 0; i < m.Ndim; i++ {
		xi[i] = m.Xmin[i] - δ
		xf[i] = m.Xmax[i] + δ
		ndiv[i] = Ndiv
	}
	NodBins.Init(xi, xf, ndiv)
	for _, nod := range Res.Nodes {
		NodBins.Append(nod.X, nod.Vid, nil)
	}
	return
}

// Define defines a set of points
func Define(alias string, loc Locator) (err error) {
	if Res == nil {
		return chk.Err("Start must be called before Define")
	}
	pts := loc.Locate()
	if len(pts) == 0 {
		return chk.Err("cannot define entities with alias %q", alias)
	}
	Results[alias] = pts
	return
}

// GetRes returns the values of variable key at the points with given alias
func GetRes(key, alias string) (vals []float64) {
	pts := getPoints(alias)
	vals = make([]float64, len(pts))
	for i, p := range pts {
		v, ok := p.Vals[key]
		if !ok {
			chk.Panic("cannot find variable %q at point %d with alias %q", key, p.Vid, alias)
		}
		vals[i] = v
	}
	return
}

// GetXYZ returns the coordinates of the points with given alias
func GetXYZ(alias string) (x, y, z []float64) {
	pts := getPoints(alias)
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	z = make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p.X[0]
		if len(p.X) > 1 {
			y[i] = p.X[1]
		}
		if len(p.X) > 2 {
			z[i] = p.X[2]
		}
	}
	return
}

// GetDist returns the distances of the points with given alias from the first one
func GetDist(alias string) (dist []float64) {
	pts := getPoints(alias)
	dist = make([]float64, len(pts))
	for i, p := range pts {
		dist[i] = p.Dist
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// getPoints returns the points with given alias
func getPoints(alias string) Points {
	pts, ok := Results[alias]
	if !ok {
		chk.Panic("cannot find points with alias %q", alias)
	}
	return pts
}

// findNode returns the point at x or nil
func findNode(x []float64) *Point {
	if useBins {
		id, sqdist := NodBins.FindClosest(x)
		if id >= 0 && math.Sqrt(sqdist) < TolC {
			return Vid2pt[id]
		}
	}
	for _, p := range Vid2pt {
		if distance(p.X, x) < TolC {
			return p
		}
	}
	return nil
}

// sortByDist sets the distances from xi and sorts points
func sortByDist(pts Points, xi []float64) Points {
	for _, p := range pts {
		p.Dist = distance(p.X, xi)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Dist < pts[j].Dist })
	return pts
}

// distance returns the Euclidean distance between a and b
func distance(a, b []float64) (d float64) {
	for i := 0; i < len(a) && i < len(b); i++ {
		d += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(d)
}
