// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Locator defines interface for all locators
type Locator interface {
	Locate() Points
}

// N locates points by vertex ids
type N []int

// At locates a point with exact coordinates
type At []float64

// AlongX locates points along a line parallel to x at given y (2D) or y and z (3D)
type AlongX []float64

// AlongY locates points along a line parallel to y at given x (2D) or x and z (3D)
type AlongY []float64

// Along locates points along a segment given by two points in 2D or 3D: {xa, ya, xb, yb} or
// {xa, ya, za, xb, yb, zb}
type Along []float64

// Locate finds points. The order of ids is kept
func (o N) Locate() (res Points) {
	for _, vid := range o {
		if p, ok := Vid2pt[vid]; ok {
			res = append(res, p)
		}
	}
	for _, p := range res {
		p.Dist = distance(p.X, res[0].X)
	}
	return
}

// Locate finds points
func (o At) Locate() (res Points) {
	if p := findNode(o); p != nil {
		p.Dist = 0
		res = Points{p}
	}
	return
}

// Locate finds points
func (o AlongX) Locate() (res Points) {
	ndim := Sim.Msh.Ndim
	if ndim < 2 {
		chk.Panic("AlongX requires a 2D or 3D mesh")
	}
	xi := make([]float64, ndim)
	xf := make([]float64, ndim)
	xi[0], xf[0] = Sim.Msh.Xmin[0], Sim.Msh.Xmax[0]
	for i := 1; i < ndim; i++ {
		if i-1 < len(o) {
			xi[i], xf[i] = o[i-1], o[i-1]
		}
	}
	return alongSegment(xi, xf)
}

// Locate finds points
func (o AlongY) Locate() (res Points) {
	ndim := Sim.Msh.Ndim
	if ndim < 2 {
		chk.Panic("AlongY requires a 2D or 3D mesh")
	}
	xi := make([]float64, ndim)
	xf := make([]float64, ndim)
	xi[1], xf[1] = Sim.Msh.Xmin[1], Sim.Msh.Xmax[1]
	if len(o) > 0 {
		xi[0], xf[0] = o[0], o[0]
	}
	if ndim == 3 && len(o) > 1 {
		xi[2], xf[2] = o[1], o[1]
	}
	return alongSegment(xi, xf)
}

// Locate finds points
func (o Along) Locate() (res Points) {
	ndim := Sim.Msh.Ndim
	if len(o) != 2*ndim {
		chk.Panic("Along requires %d coordinates. %d is invalid", 2*ndim, len(o))
	}
	return alongSegment(o[:ndim], o[ndim:])
}

// alongSegment returns the points on segment xi-xf sorted by the distance from xi
func alongSegment(xi, xf []float64) (res Points) {
	if useBins && len(xi) == 2 {
		for _, id := range NodBins.FindAlongSegment(xi, xf, TolC) {
			res = append(res, Vid2pt[id])
		}
		return sortByDist(res, xi)
	}
	for _, p := range Vid2pt {
		if onSegment(p.X, xi, xf) {
			res = append(res, p)
		}
	}
	return sortByDist(res, xi)
}

// onSegment tells whether x lies on segment xi-xf
func onSegment(x, xi, xf []float64) bool {
	var ll, t float64
	for i := range xi {
		ll += (xf[i] - xi[i]) * (xf[i] - xi[i])
		t += (x[i] - xi[i]) * (xf[i] - xi[i])
	}
	if ll < TolC*TolC {
		return distance(x, xi) < TolC
	}
	t /= ll
	if t < -TolC || t > 1+TolC {
		return false
	}
	var d float64
	for i := range xi {
		d += math.Pow(x[i]-xi[i]-t*(xf[i]-xi[i]), 2)
	}
	return math.Sqrt(d) < TolC
}
