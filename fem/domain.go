// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
	"github.com/xj361685640/IBAMR/inp"
)

// Domain holds the active cells of a mesh and all finite element systems defined on them.
// Only cells in this processor are used for assembly; however, information from all active
// cells is recorded so that all processors number DOFs and constraints identically.
type Domain struct {

	// init: auxiliary variables
	Comm    *Comm           // communicator
	Verbose bool            // verbose
	ShowMsg bool            // show messages: if verbose==true and proc==0
	Sim     *inp.Simulation // input data
	Msh     *msh.Mesh       // mesh data

	// cells
	Cells      []*msh.Cell // active cells
	MyCells    []*msh.Cell // active cells in this processor
	Cid2active []bool      // [ncells] CellId => whether cell is active or not in ANY processor

	// systems
	Systems  map[string]*System // all systems
	SysNames []string           // names of systems in the order they were added

	// auxiliary
	sideCount map[string]int // number of active cells sharing a side
}

// NewDomain returns a new domain with the systems defined in sim
func NewDomain(sim *inp.Simulation, comm *Comm, verbose bool) (o *Domain, err error) {

	// check
	if sim.Msh == nil {
		return nil, chk.Err("mesh is not available")
	}
	if comm.Distr() {
		nparts := len(sim.Msh.Tmaps.CellPart2cells)
		if comm.Size() != nparts {
			return nil, chk.Err("number of processors must be equal to the number of partitions defined in mesh file. %d != %d", comm.Size(), nparts)
		}
	}

	// new domain
	o = new(Domain)
	o.Comm = comm
	o.Verbose = verbose
	o.ShowMsg = verbose && comm.Root()
	o.Sim = sim
	o.Msh = sim.Msh
	o.Systems = make(map[string]*System)
	o.sideCount = make(map[string]int)

	// active cells
	o.Cid2active = make([]bool, len(o.Msh.Cells))
	for _, cell := range o.Msh.Cells {
		if cell.Disabled {
			continue
		}
		o.Cid2active[cell.ID] = true
		o.Cells = append(o.Cells, cell)
		if cell.Part == comm.Rank() || !comm.Distr() {
			o.MyCells = append(o.MyCells, cell)
		}
		for side := 0; side < o.NumSides(cell); side++ {
			o.sideCount[o.sideKey(cell, side)]++
		}
	}
	if len(o.Cells) == 0 {
		return nil, chk.Err("mesh has no active cells")
	}

	// systems
	for _, sdata := range sim.Systems {
		_, err = o.AddSystem(sdata)
		if err != nil {
			return nil, err
		}
	}

	// message
	if o.ShowMsg {
		io.Pf(">> Number of active cells = %d\n", len(o.Cells))
		io.Pf(">> Number of cells in this processor = %d\n", len(o.MyCells))
	}
	return
}

// AddSystem allocates a new system and numbers its DOFs
func (o *Domain) AddSystem(sdata *inp.SystemData) (sys *System, err error) {
	if _, ok := o.Systems[sdata.Name]; ok {
		return nil, chk.Err("system named %q exists already", sdata.Name)
	}
	sys, err = NewSystem(o, sdata)
	if err != nil {
		return nil, chk.Err("cannot allocate system %q:\n%v", sdata.Name, err)
	}
	o.Systems[sys.Name] = sys
	o.SysNames = append(o.SysNames, sys.Name)
	if o.ShowMsg {
		io.Pf(">> System %q: number of equations = %d\n", sys.Name, sys.Ndofs)
		io.Pf(">> System %q: number of constrained equations = %d\n", sys.Name, sys.Cons.NumConstrained())
	}
	if o.Sim.Data.ListCons && o.Comm.Root() {
		io.Pf("%v", sys.Cons.List(sys.Cons.T))
	}
	return
}

// GetSystem returns a system by name
func (o *Domain) GetSystem(name string) (sys *System, err error) {
	sys, ok := o.Systems[name]
	if !ok {
		return nil, chk.Err("cannot find system named %q", name)
	}
	return
}

// sides ////////////////////////////////////////////////////////////////////////////////////////

// NumSides returns the number of sides of cell: vertices (1D), edges (2D) or faces (3D)
func (o *Domain) NumSides(cell *msh.Cell) int {
	return len(sideLocalVerts(cell))
}

// SideVerts returns the ids of vertices on a side of cell
func (o *Domain) SideVerts(cell *msh.Cell, side int) (vids []int) {
	lverts := sideLocalVerts(cell)[side]
	vids = make([]int, len(lverts))
	for i, l := range lverts {
		vids[i] = cell.V[l]
	}
	return
}

// HasNeighbor tells whether a side of cell is shared by another active cell
func (o *Domain) HasNeighbor(cell *msh.Cell, side int) bool {
	return o.sideCount[o.sideKey(cell, side)] > 1
}

// SideTag returns the tag of a side of cell; zero if not tagged
func (o *Domain) SideTag(cell *msh.Cell, side int) int {
	switch cell.Gndim {
	case 1:
		return o.Msh.Verts[cell.V[side]].Tag
	case 2:
		if len(cell.EdgeTags) > side {
			return cell.EdgeTags[side]
		}
	default:
		if len(cell.FaceTags) > side {
			return cell.FaceTags[side]
		}
	}
	return 0
}

// BoundaryIDs returns the boundary ids attached to a side of cell
func (o *Domain) BoundaryIDs(cell *msh.Cell, side int) (ids []int) {
	tag := o.SideTag(cell, side)
	if tag == 0 {
		return
	}
	return o.Sim.GetBryIds(tag)
}

// TagVerts returns the vertices on the sides with a given tag. Vertex tags are used if no side
// has such tag.
func (o *Domain) TagVerts(tag int) (verts msh.VertexSet) {
	switch o.Msh.Ndim {
	case 2:
		verts = o.Msh.Tmaps.EdgeTag2verts[tag]
	case 3:
		verts = o.Msh.Tmaps.FaceTag2verts[tag]
	}
	if len(verts) == 0 {
		verts = o.Msh.Tmaps.VertexTag2verts[tag]
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// sideKey returns a key identifying a side by its sorted vertices
func (o *Domain) sideKey(cell *msh.Cell, side int) string {
	vids := o.SideVerts(cell, side)
	sort.Ints(vids)
	return io.Sf("%v", vids)
}

// lin2 and lin3 cells have their end vertices as sides
var linSides = [][]int{{0}, {1}}

// sideLocalVerts returns the local vertices of all sides of cell
func sideLocalVerts(cell *msh.Cell) [][]int {
	switch cell.Gndim {
	case 1:
		return linSides
	case 2:
		return msh.EdgeLocalVerts[cell.TypeIndex]
	}
	return msh.FaceLocalVerts[cell.TypeIndex]
}
