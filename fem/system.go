// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/utl"
	"github.com/xj361685640/IBAMR/ele"
	"github.com/xj361685640/IBAMR/inp"
	"github.com/xj361685640/IBAMR/shp"
)

// boundary ids of sides with zero displacement along one or more axes
const (
	ZeroDisplX   = 0x100
	ZeroDisplY   = 0x200
	ZeroDisplZ   = 0x400
	ZeroDisplXY  = ZeroDisplX | ZeroDisplY
	ZeroDisplXZ  = ZeroDisplX | ZeroDisplZ
	ZeroDisplYZ  = ZeroDisplY | ZeroDisplZ
	ZeroDisplXYZ = ZeroDisplX | ZeroDisplY | ZeroDisplZ
)

// ZeroDisplBit returns the zero-displacement bit of axis (0, 1 or 2)
func ZeroDisplBit(axis int) int { return ZeroDisplX << uint(axis) }

// System holds the DOFs of one field made of scalar variables with nodal (vertex) values
type System struct {
	Name     string       // name of system
	Vars     []string     // variables; e.g. ["ux", "uy"]
	Quad     inp.QuadData // quadrature
	Nodes    []*Node      // active nodes. indices in Nodes do NOT correspond to vertex ids
	Vid2node []*Node      // [nverts] VertexId => node. Inactive vertices are 'nil'
	Ndofs    int          // total number of equations
	Cons     Constraints  // constraints
	Sol      *Vector      // solution vector
	dom      *Domain      // domain
}

// NewSystem allocates a new system and numbers its DOFs node-major: all active vertices, in
// cell order and then local vertex order, receive one equation per variable
func NewSystem(dom *Domain, sdata *inp.SystemData) (o *System, err error) {

	// check
	if len(sdata.Vars) == 0 {
		return nil, chk.Err("system %q must have at least one variable", sdata.Name)
	}
	if utl.StrIndexSmall(sdata.Vars, "") >= 0 {
		return nil, chk.Err("variables of system %q must have names", sdata.Name)
	}

	// new system
	o = new(System)
	o.Name = sdata.Name
	o.Vars = sdata.Vars
	o.Quad = sdata.Quad
	if o.Quad.Family == "" {
		o.Quad.Family = "gauss"
	}
	o.Vid2node = make([]*Node, len(dom.Msh.Verts))
	o.dom = dom

	// for each active cell
	var eq int
	for _, cell := range dom.Cells {

		// get element info
		info, err := ele.GetInfo("consistent", cell, o.Vars)
		if err != nil {
			return nil, chk.Err("get element information failed:\n%v", err)
		}
		if len(info.Dofs) != len(cell.V) {
			return nil, chk.Err("number of nodes of cell %d is incorrect. %d != %d", cell.ID, len(info.Dofs), len(cell.V))
		}

		// loop over nodes of this element
		for j, v := range cell.V {
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(dom.Msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}
			for _, ukey := range info.Dofs[j] {
				eq = nod.AddDofAndEq(ukey, eq)
			}
		}
	}
	o.Ndofs = eq

	// solution vector
	o.Sol = NewVector(dom.Comm, o.Ndofs)

	// constraints
	err = o.setConstraints(sdata)
	return
}

// VarIndex returns the index of variable key or -1 if not found
func (o *System) VarIndex(key string) int {
	return utl.StrIndexSmall(o.Vars, key)
}

// Dofs returns the equations of variable ivar on the vertices of a cell
func (o *System) Dofs(cellID int, ivar int) (eqs []int) {
	cell := o.dom.Msh.Cells[cellID]
	eqs = make([]int, len(cell.V))
	for j, v := range cell.V {
		eqs[j] = o.Vid2node[v].GetEq(o.Vars[ivar])
	}
	return
}

// RuleKey returns the quadrature key of a cell
func (o *System) RuleKey(cell *msh.Cell) shp.Key {
	return shp.Key{CellType: cell.TypeIndex, Family: o.Quad.Family, Order: o.Quad.Order}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// setConstraints sets and builds all constraints of system
func (o *System) setConstraints(sdata *inp.SystemData) (err error) {
	o.Cons.Init()
	for i, c := range sdata.Constraints {
		ivars, err := o.varIndices(c.Vars)
		if err != nil {
			return chk.Err("constraint # %d:\n%v", i, err)
		}
		switch c.Type {
		case "periodic":
			err = o.setPeriodic(c, ivars)
		case "hanging":
			err = o.setHanging(c, ivars)
		case "dirichlet":
			err = o.setDirichlet(c, ivars)
		default:
			err = chk.Err("constraint type %q is invalid", c.Type)
		}
		if err != nil {
			return chk.Err("constraint # %d:\n%v", i, err)
		}
	}
	if sdata.ZeroDispl {
		err = o.setZeroDispl()
		if err != nil {
			return
		}
	}
	return o.Cons.Build()
}

// setPeriodic matches vertices on the slave boundary with vertices on the master boundary
//
//   x(master) = x(slave) + offset
func (o *System) setPeriodic(c *inp.ConstraintData, ivars []int) (err error) {

	// data
	tol, ndiv, err := GetConstraintFlags(c.Extra)
	if err != nil {
		return
	}
	if len(c.Tags) != 2 {
		return chk.Err("periodic constraint needs two tags: [slave, master]")
	}
	ndim := o.dom.Msh.Ndim
	if len(c.Offset) != ndim {
		return chk.Err("offset of periodic constraint must have %d components", ndim)
	}
	slaves := o.dom.TagVerts(c.Tags[0])
	masters := o.dom.TagVerts(c.Tags[1])
	if len(slaves) == 0 || len(masters) == 0 {
		return chk.Err("cannot find vertices with tags %v", c.Tags)
	}

	// bins with master vertices
	var bins *gm.Bins
	if ndim > 1 {
		xmin := make([]float64, ndim)
		xmax := make([]float64, ndim)
		ndivs := make([]int, ndim)
		for k := 0; k < ndim; k++ {
			xmin[k] = o.dom.Msh.Xmin[k] - 10*tol
			xmax[k] = o.dom.Msh.Xmax[k] + 10*tol
			ndivs[k] = ndiv
		}
		bins = new(gm.Bins)
		bins.Init(xmin, xmax, ndivs)
		for _, m := range masters {
			if o.Vid2node[m.ID] != nil {
				bins.Append(m.X, m.ID, nil)
			}
		}
	}

	// find pairs
	x := make([]float64, ndim)
	for _, s := range slaves {
		if o.Vid2node[s.ID] == nil {
			continue
		}
		for k := 0; k < ndim; k++ {
			x[k] = s.X[k] + c.Offset[k]
		}
		mid := -1
		if bins != nil {
			id, sqdist := bins.FindClosest(x)
			if id >= 0 && math.Sqrt(sqdist) <= tol {
				mid = id
			}
		}
		if mid < 0 { // closest vertex may sit in a neighbour bin
			dmin := math.Inf(1)
			for _, m := range masters {
				if o.Vid2node[m.ID] == nil {
					continue
				}
				d := 0.0
				for k := 0; k < ndim; k++ {
					d += math.Pow(x[k]-m.X[k], 2)
				}
				if d < dmin {
					dmin, mid = d, m.ID
				}
			}
			if math.Sqrt(dmin) > tol {
				mid = -1
			}
		}
		if mid < 0 {
			return chk.Err("cannot find periodic match of vertex %d @ %v", s.ID, x)
		}
		if mid == s.ID {
			continue
		}
		for _, ivar := range ivars {
			key := o.Vars[ivar]
			err = o.Cons.Set("periodic", o.Vid2node[s.ID].GetEq(key), []int{o.Vid2node[mid].GetEq(key)}, []float64{1}, nil, nil)
			if err != nil {
				return
			}
		}
	}
	return
}

// setHanging constrains a vertex to a weighted combination of master vertices
func (o *System) setHanging(c *inp.ConstraintData, ivars []int) (err error) {
	if len(c.Masters) == 0 || len(c.Masters) != len(c.Weights) {
		return chk.Err("hanging constraint needs the same (non-zero) number of masters and weights")
	}
	nodes := make([]*Node, len(c.Masters)+1)
	for i, vid := range append([]int{c.Vert}, c.Masters...) {
		if vid < 0 || vid >= len(o.Vid2node) || o.Vid2node[vid] == nil {
			return chk.Err("vertex %d of hanging constraint is not active", vid)
		}
		nodes[i] = o.Vid2node[vid]
	}
	for _, ivar := range ivars {
		key := o.Vars[ivar]
		eqs := make([]int, len(c.Masters))
		for k := range c.Masters {
			eqs[k] = nodes[1+k].GetEq(key)
		}
		err = o.Cons.Set("hanging", nodes[0].GetEq(key), eqs, utl.GetCopy(c.Weights), nil, nil)
		if err != nil {
			return
		}
	}
	return
}

// setDirichlet prescribes values g(t,x) on tagged vertices
func (o *System) setDirichlet(c *inp.ConstraintData, ivars []int) (err error) {
	fcn, err := o.dom.Sim.Functions.Get(c.Func)
	if err != nil {
		return
	}
	for _, tag := range c.Tags {
		verts := o.dom.TagVerts(tag)
		if len(verts) == 0 {
			return chk.Err("cannot find vertices with tag = %d to assign dirichlet constraints", tag)
		}
		for _, v := range verts {
			nod := o.Vid2node[v.ID]
			if nod == nil {
				continue
			}
			for _, ivar := range ivars {
				err = o.Cons.Set("dirichlet", nod.GetEq(o.Vars[ivar]), nil, nil, fcn, v.X)
				if err != nil {
					return
				}
			}
		}
	}
	return
}

// setZeroDispl sets zero values on sides without neighbours whose boundary ids flag zero
// displacement along the axis of each variable (variable 0 => x, 1 => y, 2 => z)
func (o *System) setZeroDispl() (err error) {
	for _, cell := range o.dom.Cells {
		for side := 0; side < o.dom.NumSides(cell); side++ {
			if o.dom.HasNeighbor(cell, side) {
				continue
			}
			mask := 0
			for _, id := range o.dom.BoundaryIDs(cell, side) {
				mask |= id
			}
			if mask&ZeroDisplXYZ == 0 {
				continue
			}
			for ivar := 0; ivar < len(o.Vars) && ivar < 3; ivar++ {
				if mask&ZeroDisplBit(ivar) == 0 {
					continue
				}
				for _, v := range o.dom.SideVerts(cell, side) {
					err = o.Cons.Set("zerodispl", o.Vid2node[v].GetEq(o.Vars[ivar]), nil, nil, nil, nil)
					if err != nil {
						return
					}
				}
			}
		}
	}
	return
}

// varIndices returns the indices of variables; all variables if keys is empty
func (o *System) varIndices(keys []string) (ivars []int, err error) {
	if len(keys) == 0 {
		return utl.IntRange(len(o.Vars)), nil
	}
	ivars = make([]int, len(keys))
	for i, key := range keys {
		ivars[i] = o.VarIndex(key)
		if ivars[i] < 0 {
			return nil, chk.Err("system %q does not have variable %q", o.Name, key)
		}
	}
	return
}
