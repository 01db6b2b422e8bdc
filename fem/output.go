// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// NodeResults holds the projected values at one vertex
type NodeResults struct {
	Vid    int                `json:"vid"` // vertex id
	X      []float64          `json:"x"`   // coordinates
	Values map[string]float64 `json:"u"`   // variable => value
}

// Results holds the outcome of one L2 projection
type Results struct {
	Key        string         `json:"key"`        // simulation key
	System     string         `json:"system"`     // name of system
	Vars       []string       `json:"vars"`       // variables
	Sources    []string       `json:"sources"`    // names of source functions
	Consistent bool           `json:"consistent"` // consistent mass matrix was used
	Converged  bool           `json:"converged"`  // linear solver converged
	Time       float64        `json:"time"`       // time used to evaluate sources
	L2Error    float64        `json:"l2error"`    // ‖u_h - f‖ in the L2 norm
	Nodes      []*NodeResults `json:"nodes"`      // nodal values
}

// NewResults collects the values of u at the nodes of system
func NewResults(sys *System, u *Vector) (o *Results) {
	o = &Results{System: sys.Name, Vars: sys.Vars}
	o.Nodes = make([]*NodeResults, len(sys.Nodes))
	for i, nod := range sys.Nodes {
		res := &NodeResults{Vid: nod.Vert.ID, X: utl.GetCopy(nod.Vert.X), Values: make(map[string]float64)}
		for _, dof := range nod.Dofs {
			res.Values[dof.Key] = u.Data[dof.Eq]
		}
		o.Nodes[i] = res
	}
	return
}

// ResultsFilename returns the name of the file with the results of a projection
//  idx -- index of projection in simulation file
func ResultsFilename(key, system string, idx int) string {
	return io.Sf("%s-%s-%d.json", key, system, idx)
}

// Save saves results to dirout/fn
func (o *Results) Save(dirout, fn string, verbose bool) (err error) {
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, "json")
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode results of system %q:\n%v", o.System, err)
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	if verbose {
		io.WriteFileVD(dirout, fn, &buf)
	} else {
		io.WriteFileD(dirout, fn, &buf)
	}
	return
}

// ReadResults reads results from dirout/fn
func ReadResults(dirout, fn string) (o *Results, err error) {
	fil, err := os.Open(filepath.Join(dirout, fn))
	if err != nil {
		return nil, chk.Err("cannot open results file %q:\n%v", fn, err)
	}
	defer fil.Close()
	o = new(Results)
	dec := utl.NewDecoder(fil, "json")
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode results file %q:\n%v", fn, err)
	}
	return
}
