// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	Mshfile  string `json:"mshfile"`  // file path of file with mesh data
	AbsPath  bool   `json:"abspath"`  // mesh filename is given in absolute path
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/ibproj
	Logging  bool   `json:"logging"`  // enable messages from the projector
	ListCons bool   `json:"listcons"` // list constraints after they are built
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Consistent string  `json:"consistent"` // solver for the consistent mass matrix: "cr", "cg", "umfpack" or "mumps"
	Lumped     string  `json:"lumped"`     // solver for the lumped mass matrix
	Pc         string  `json:"pc"`         // preconditioner: "jacobi" or "none"
	Atol       float64 `json:"atol"`       // absolute tolerance on the residual norm
	Dtol       float64 `json:"dtol"`       // divergence tolerance (relative to the initial residual)
	Verbose    bool    `json:"verbose"`    // verbose?
	Symmetric  bool    `json:"symmetric"`  // use symmetric direct solver
	Ordering   string  `json:"ordering"`   // ordering scheme (direct solvers)
	Scaling    string  `json:"scaling"`    // scaling scheme (direct solvers)
}

// QuadData holds the quadrature definition of a system
type QuadData struct {
	Family string `json:"family"` // "gauss" or "default"
	Order  int    `json:"order"`  // polynomial degree integrated exactly; 0 => 2p+1
}

// BryIdsData attaches boundary ids to tagged edges (2D) or faces (3D)
type BryIdsData struct {
	Tag int   `json:"tag"` // edge or face tag
	Ids []int `json:"ids"` // boundary ids; e.g. 0x100 == zero displacement along x
}

// ConstraintData holds the definition of a group of DOF constraints
type ConstraintData struct {
	Type    string    `json:"type"`    // "periodic", "hanging" or "dirichlet"
	Tags    []int     `json:"tags"`    // periodic: [slaveTag, masterTag]; dirichlet: [tag]
	Offset  []float64 `json:"offset"`  // periodic: x(master) = x(slave) + offset
	Vert    int       `json:"vert"`    // hanging: id of hanging vertex
	Masters []int     `json:"masters"` // hanging: ids of master vertices
	Weights []float64 `json:"weights"` // hanging: weights of masters
	Vars    []string  `json:"vars"`    // variables affected; empty => all variables of system
	Func    string    `json:"func"`    // dirichlet: name of function g(t,x)
	Extra   string    `json:"extra"`   // extra information in keycode format; e.g. "!tol:1e-8"
}

// SystemData holds the definition of one finite element system
type SystemData struct {
	Name        string            `json:"name"`        // name of system; e.g. "velocity"
	Vars        []string          `json:"vars"`        // scalar variables; e.g. ["ux", "uy"]
	Quad        QuadData          `json:"quad"`        // quadrature
	ZeroDispl   bool              `json:"zerodispl"`   // constrain DOFs on sides with zero-displacement boundary ids
	Constraints []*ConstraintData `json:"constraints"` // constraints
}

// ProjectionData holds the definition of one L2 projection to be computed by the driver
type ProjectionData struct {
	System     string   `json:"system"`     // name of system
	Sources    []string `json:"sources"`    // names of source functions; one per variable
	Consistent bool     `json:"consistent"` // use consistent mass matrix
	Tol        float64  `json:"tol"`        // relative tolerance
	MaxIts     int      `json:"maxits"`     // max number of iterations
	Time       float64  `json:"time"`       // time used to evaluate source functions
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data        Data              `json:"data"`        // stores global simulation data
	Functions   FuncsData         `json:"functions"`   // stores all functions
	BryIds      []*BryIdsData     `json:"bryids"`      // boundary ids attached to tags
	Systems     []*SystemData     `json:"systems"`     // finite element systems
	LinSol      LinSolData        `json:"linsol"`      // linear solver data
	Projections []*ProjectionData `json:"projections"` // projections to be computed
	Options     map[string]string `json:"options"`     // runtime options; e.g. "ksp_rtol"

	// derived
	DirOut string    // directory to save results
	Key    string    // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	Ndim   int       // space dimension
	Msh    *msh.Mesh // the mesh
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath, alias string, erasePrev, createDirOut bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(os.ExpandEnv(simfilepath))
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	o = new(Simulation)
	o.LinSol.SetDefault()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/ibproj/" + fnkey
	}
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// read mesh
	ddir := dir
	if o.Data.AbsPath {
		ddir = ""
	}
	o.Msh, err = ReadMsh(ddir, o.Data.Mshfile)
	if err != nil {
		return nil, err
	}
	o.Ndim = o.Msh.Ndim

	// check and fix data
	err = o.PostProcess()
	return
}

// ReadMsh reads a mesh file in gosl JSON format
func ReadMsh(dir, fn string) (m *msh.Mesh, err error) {
	if fn == "" {
		return nil, chk.Err("ReadMsh: mesh filename is empty")
	}
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("ReadMsh: cannot read mesh file %q:\n%v", fn, r)
		}
	}()
	m = msh.Read(filepath.Join(dir, fn))
	return
}

// GetSystem returns system data by name; nil if not found
func (o *Simulation) GetSystem(name string) *SystemData {
	for _, sys := range o.Systems {
		if sys.Name == name {
			return sys
		}
	}
	return nil
}

// GetBryIds returns the boundary ids attached to a tag
func (o *Simulation) GetBryIds(tag int) (ids []int) {
	for _, b := range o.BryIds {
		if b.Tag == tag {
			ids = append(ids, b.Ids...)
		}
	}
	return
}

// ApplyOptions copies the runtime options of the .sim file to the global registry.
// Options set beforehand (e.g. from the command line) are not replaced.
func (o *Simulation) ApplyOptions() {
	for key, val := range o.Options {
		if !HasOption(key) {
			SetOption(key, val)
		}
	}
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Consistent = "cr"
	o.Lumped = "cg"
	o.Pc = "jacobi"
	o.Atol = 1e-50
	o.Dtol = 1e5
	o.Ordering = "amf"
	o.Scaling = "rcit"
}

// SetDefault sets defaults values
func (o *ProjectionData) SetDefault() {
	if o.Tol <= 0 {
		o.Tol = 1e-10
	}
	if o.MaxIts <= 0 {
		o.MaxIts = 1000
	}
}

// PostProcess checks the just read json file and sets defaults
func (o *Simulation) PostProcess() (err error) {

	// systems
	names := make(map[string]bool)
	for _, sys := range o.Systems {
		if sys.Name == "" {
			return chk.Err("system name must not be empty")
		}
		if names[sys.Name] {
			return chk.Err("system named %q is defined more than once", sys.Name)
		}
		names[sys.Name] = true
		if len(sys.Vars) == 0 {
			return chk.Err("system %q must have at least one variable", sys.Name)
		}
		if sys.Quad.Family == "" {
			sys.Quad.Family = "gauss"
		}
		for _, c := range sys.Constraints {
			switch c.Type {
			case "periodic":
				if len(c.Tags) != 2 || len(c.Offset) != o.Ndim {
					return chk.Err("periodic constraint of system %q needs 2 tags and an offset with %d components", sys.Name, o.Ndim)
				}
			case "hanging":
				if len(c.Masters) == 0 || len(c.Masters) != len(c.Weights) {
					return chk.Err("hanging constraint of system %q needs the same (non-zero) number of masters and weights", sys.Name)
				}
			case "dirichlet":
				if len(c.Tags) == 0 {
					return chk.Err("dirichlet constraint of system %q needs at least one tag", sys.Name)
				}
				if c.Func == "" {
					c.Func = "zero"
				}
			default:
				return chk.Err("constraint type %q is invalid", c.Type)
			}
		}
	}

	// projections
	for _, prj := range o.Projections {
		sys := o.GetSystem(prj.System)
		if sys == nil {
			return chk.Err("cannot find system named %q for projection", prj.System)
		}
		if len(prj.Sources) != len(sys.Vars) {
			return chk.Err("projection onto system %q needs %d source functions; %d given", prj.System, len(sys.Vars), len(prj.Sources))
		}
		prj.SetDefault()
	}
	return
}
