// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/gm/msh"
	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom
type Dof struct {
	Key string // primary variable key. e.g. "ux"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs []*Dof      // degrees-of-freedom == primary variables
	Vert *msh.Vertex // pointer to Vertex
}

// NewNode allocates a new Node
func NewNode(v *msh.Vertex) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof and equation number if the key does not exist yet
//  Output: the next equation number
func (o *Node) AddDofAndEq(key string, eq int) (next int) {
	for _, d := range o.Dofs {
		if d.Key == key {
			return eq
		}
	}
	o.Dofs = append(o.Dofs, &Dof{key, eq})
	return eq + 1
}

// GetEq returns the equation number of key or -1 if not found
func (o *Node) GetEq(key string) (eq int) {
	for _, d := range o.Dofs {
		if d.Key == key {
			return d.Eq
		}
	}
	return -1
}

// String returns a string representation of this node
func (o *Node) String() (l string) {
	l = io.Sf("{ \"id\":%d, \"x\":%v, \"dofs\":[", o.Vert.ID, o.Vert.X)
	for i, d := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"%s\":%d}", d.Key, d.Eq)
	}
	l += "] }"
	return
}
