// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Interpolate sets the nodal values of v with given functions evaluated at the vertices
//  fcns -- one function per variable
func (o *System) Interpolate(v *Vector, fcns []dbf.T, t float64) (err error) {

	// check
	if len(fcns) != len(o.Vars) {
		return chk.Err("number of functions must be equal to number of variables of system %q. %d != %d", o.Name, len(fcns), len(o.Vars))
	}
	if v.Size() != o.Ndofs {
		return chk.Err("vector must have size %d to hold values of system %q", o.Ndofs, o.Name)
	}

	// set nodes
	for i, fcn := range fcns {
		key := o.Vars[i]
		for _, nod := range o.Nodes {
			eq := nod.GetEq(key)
			if eq < 0 {
				return chk.Err("dof=%q cannot be found in node=%d for setting nodal values", key, nod.Vert.ID)
			}
			v.Data[eq] = fcn.F(t, nod.Vert.X)
		}
	}
	return
}

// InterpolateFuncs sets the nodal values of v with functions given by name
func (o *System) InterpolateFuncs(v *Vector, names []string, t float64) (err error) {
	fcns, err := o.dom.Sim.Functions.GetList(names)
	if err != nil {
		return
	}
	return o.Interpolate(v, fcns, t)
}
