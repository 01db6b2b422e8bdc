// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/xj361685640/IBAMR/fem"
)

func init() {
	io.Verbose = false
}

func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// GetVidsEqs returns the vertex ids of the nodes of sys and their equation numbers
func GetVidsEqs(sys *fem.System) (vids, eqs []int) {
	for _, nod := range sys.Nodes {
		vids = append(vids, nod.Vert.ID)
		for _, dof := range nod.Dofs {
			eqs = append(eqs, dof.Eq)
		}
	}
	return
}
