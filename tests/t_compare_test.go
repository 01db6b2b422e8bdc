// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/xj361685640/IBAMR/fem"
)

func Test_compare01(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("compare01. constant on single cell")

	CompareResults(tst, "data/unitsq.sim", "data/unitsq.cmp", "", 1e-10, chk.Verbose, func(main *fem.Main) {
		sys, err := main.Dom.GetSystem("scalar")
		assert.NoError(tst, err)
		vids, eqs := GetVidsEqs(sys)
		chk.Ints(tst, "vids", vids, []int{0, 1, 2, 3})
		chk.Ints(tst, "eqs", eqs, []int{0, 1, 2, 3})
	})
}

func Test_compare02(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("compare02. constraints on 2x2 mesh")

	CompareResults(tst, "data/square.sim", "data/square.cmp", "", 1e-9, chk.Verbose, func(main *fem.Main) {
		sys, err := main.Dom.GetSystem("velocity")
		assert.NoError(tst, err)
		vids, eqs := GetVidsEqs(sys)
		chk.Int(tst, "number of nodes", len(vids), 9)
		chk.Int(tst, "number of equations", len(eqs), 18)
		assert.True(tst, sys.Cons.NumConstrained() > 0)
	})
}
