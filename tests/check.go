// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to compare L2 projections with reference
// results
package tests

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/xj361685640/IBAMR/fem"
	"github.com/xj361685640/IBAMR/inp"
)

// RefNode holds reference values at one point
type RefNode struct {
	X []float64          `json:"x"` // coordinates
	U map[string]float64 `json:"u"` // variable => value
}

// Reference holds reference results of one projection
type Reference struct {
	Index   int        `json:"index"`   // index of projection in simulation file
	L2Error float64    `json:"l2error"` // expected L2 error. Use -1 to skip
	Nodes   []*RefNode `json:"nodes"`   // values at points
}

// ReferenceSet is a set of reference results
type ReferenceSet []*Reference

// CompareResults runs all projections in a simulation file and compares nodal values against
// the reference results in cmpfname
//  extra -- is called after NewMain and before Run; may be nil
func CompareResults(tst *testing.T, simfilepath, cmpfname, alias string, tolu float64, verbose bool, extra func(main *fem.Main)) {

	// projections
	defer inp.ClearOptions()
	main, err := fem.NewMain(simfilepath, alias, true, false, verbose)
	if err != nil {
		tst.Errorf("CompareResults: NewMain failed:\n%v", err)
		return
	}
	if extra != nil {
		extra(main)
	}
	err = main.Run()
	if err != nil {
		tst.Errorf("CompareResults: Run failed:\n%v", err)
		return
	}

	// read file with comparison results
	buf := io.ReadFile(cmpfname)
	var cmpSet ReferenceSet
	err = json.Unmarshal(buf, &cmpSet)
	if err != nil {
		tst.Errorf("CompareResults: Unmarshal failed:\n%v", err)
		return
	}

	// run comparisons
	for _, cmp := range cmpSet {
		if cmp.Index < 0 || cmp.Index >= len(main.Results) {
			tst.Errorf("CompareResults: index of projection %d is out of range", cmp.Index)
			return
		}
		res := main.Results[cmp.Index]
		if verbose {
			io.PfYel("\n\nprojection %d onto %q . . . . . . . . . . . . . . . . . . . . . . . . . .\n", cmp.Index, res.System)
		}
		if !res.Converged {
			tst.Errorf("CompareResults: projection %d did not converge", cmp.Index)
			return
		}
		if cmp.L2Error >= 0 {
			chk.AnaNum(tst, "L2 error", tolu, res.L2Error, cmp.L2Error, verbose)
		}
		for _, ref := range cmp.Nodes {
			nod := findNode(res, ref.X)
			if nod == nil {
				tst.Errorf("CompareResults: cannot find node at %v", ref.X)
				return
			}
			for key, val := range ref.U {
				u, ok := nod.Values[key]
				if !ok {
					tst.Errorf("CompareResults: cannot find variable %q at node %d", key, nod.Vid)
					return
				}
				chk.AnaNum(tst, io.Sf("%s @ %v", key, ref.X), tolu, u, val, verbose)
			}
		}
	}
}

// findNode returns the results at the node with coordinates x; nil if not found
func findNode(res *fem.Results, x []float64) *fem.NodeResults {
	for _, nod := range res.Nodes {
		var d float64
		for i := 0; i < len(x) && i < len(nod.X); i++ {
			d += (nod.X[i] - x[i]) * (nod.X[i] - x[i])
		}
		if math.Sqrt(d) < 1e-10 {
			return nod
		}
	}
	return nil
}
