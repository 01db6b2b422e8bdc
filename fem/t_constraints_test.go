// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/stretchr/testify/assert"
)

func Test_cons01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cons01. chains of constraints")

	var cons Constraints
	cons.Init()
	two := &dbf.Cte{C: 2}
	assert.NoError(tst, cons.Set("periodic", 5, []int{4}, []float64{2}, nil, nil))
	assert.NoError(tst, cons.Set("periodic", 3, []int{2}, []float64{1}, nil, nil))
	assert.NoError(tst, cons.Set("hanging", 2, []int{0, 1}, []float64{0.5, 0.5}, nil, nil))
	assert.NoError(tst, cons.Set("dirichlet", 4, nil, nil, two, []float64{0, 0}))
	assert.NoError(tst, cons.Build())
	if chk.Verbose {
		io.Pf("%v", cons.List(0))
	}

	chk.Int(tst, "number of constraints", cons.NumConstrained(), 4)
	assert.True(tst, cons.IsConstrained(3))
	assert.False(tst, cons.IsConstrained(0))
	eqs := make([]int, len(cons.Cons))
	for i, c := range cons.Cons {
		eqs[i] = c.Eq
	}
	chk.Ints(tst, "sorted", eqs, []int{2, 3, 4, 5})

	c3 := cons.Eq2con[3]
	chk.Ints(tst, "masters of 3", c3.Masters, []int{0, 1})
	chk.Array(tst, "coefs of 3", 1e-17, c3.Coefs, []float64{0.5, 0.5})
	c5 := cons.Eq2con[5]
	chk.Int(tst, "masters of 5", len(c5.Masters), 0)
	chk.Float64(tst, "inhomogeneity of 5", 1e-17, c5.Inhomogeneity(0), 4)
	assert.True(tst, strings.Contains(cons.List(0), "dirichlet"))

	// enforce
	v := NewVector(NewComm(false), 6)
	v.Data[0], v.Data[1] = 1, 3
	cons.EnforceExactly(v)
	chk.Array(tst, "v", 1e-17, v.Data, []float64{1, 3, 2, 2, 2, 4})
}

func Test_cons02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cons02. invalid constraints")

	var cons Constraints
	cons.Init()
	assert.Error(tst, cons.Set("hanging", 0, []int{1, 2}, []float64{1}, nil, nil))

	// cycle
	assert.NoError(tst, cons.Set("periodic", 0, []int{1}, []float64{1}, nil, nil))
	assert.NoError(tst, cons.Set("periodic", 1, []int{2}, []float64{1}, nil, nil))
	assert.NoError(tst, cons.Set("periodic", 2, []int{0}, []float64{1}, nil, nil))
	assert.Error(tst, cons.Build())

	// replacing a constraint breaks the cycle
	assert.NoError(tst, cons.Set("zerodispl", 2, nil, nil, nil, nil))
	chk.Int(tst, "number of constraints", cons.NumConstrained(), 3)
	assert.NoError(tst, cons.Build())
	chk.Int(tst, "masters of 0", len(cons.Eq2con[0].Masters), 0)

	// self-reference
	cons.Init()
	assert.NoError(tst, cons.Set("periodic", 0, []int{0}, []float64{1}, nil, nil))
	assert.Error(tst, cons.Build())

	// not built
	cons.Init()
	assert.NoError(tst, cons.Set("zerodispl", 0, nil, nil, nil, nil))
	assert.Panics(tst, func() { cons.EnforceExactly(NewVector(NewComm(false), 2)) })
}

func Test_cons03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cons03. condensation of element matrices and vectors")

	M := la.NewMatrixDeep2([][]float64{
		{2, 1, 0},
		{1, 2, 1},
		{0, 1, 2},
	})
	b := la.NewVectorSlice([]float64{1, 2, 3})

	// u2 = (u0 + u3) / 2
	var cons Constraints
	cons.Init()
	assert.NoError(tst, cons.Set("hanging", 2, []int{0, 3}, []float64{0.5, 0.5}, nil, nil))
	assert.NoError(tst, cons.Build())

	Mc, ceqs := cons.ConstrainElementMatrix(M, []int{0, 1, 2})
	chk.Ints(tst, "ceqs", ceqs, []int{0, 1, 2, 3})
	chk.Deep2(tst, "Mc", 1e-15, Mc.GetDeep2(), [][]float64{
		{2.5, 1.5, 0, 0.5},
		{1.5, 2.0, 0, 0.5},
		{0.0, 0.0, 1, 0.0},
		{0.5, 0.5, 0, 0.5},
	})
	bc, ceqs := cons.ConstrainElementVector(b, nil, []int{0, 1, 2})
	chk.Ints(tst, "ceqs", ceqs, []int{0, 1, 2, 3})
	chk.Array(tst, "bc", 1e-15, bc, []float64{2.5, 2, 0, 1.5})

	// unconstrained element
	Md, deqs := cons.ConstrainElementMatrix(M, []int{0, 1, 4})
	assert.Same(tst, M, Md)
	chk.Ints(tst, "deqs", deqs, []int{0, 1, 4})

	// u2 = 1
	cons.Init()
	assert.NoError(tst, cons.Set("dirichlet", 2, nil, nil, &dbf.Cte{C: 1}, nil))
	assert.NoError(tst, cons.Build())
	Mc, ceqs = cons.ConstrainElementMatrix(M, []int{0, 1, 2})
	chk.Ints(tst, "ceqs", ceqs, []int{0, 1, 2})
	chk.Deep2(tst, "Mc", 1e-15, Mc.GetDeep2(), [][]float64{
		{2, 1, 0},
		{1, 2, 0},
		{0, 0, 1},
	})
	bc, _ = cons.ConstrainElementVector(b, M, []int{0, 1, 2})
	chk.Array(tst, "bc = b - M⋅g", 1e-15, bc, []float64{1, 1, 0})
}

func Test_keycodes01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("keycodes01")

	tol, ndiv, err := GetConstraintFlags("")
	assert.NoError(tst, err)
	chk.Float64(tst, "tol", 1e-17, tol, 1e-8)
	chk.Int(tst, "ndiv", ndiv, 20)

	tol, ndiv, err = GetConstraintFlags("!tol:1e-6 !ndiv:5")
	assert.NoError(tst, err)
	chk.Float64(tst, "tol", 1e-17, tol, 1e-6)
	chk.Int(tst, "ndiv", ndiv, 5)

	_, _, err = GetConstraintFlags("tol:1e-6")
	assert.Error(tst, err)
	_, _, err = GetConstraintFlags("!ndiv:0")
	assert.Error(tst, err)
	_, _, err = GetConstraintFlags("!tol:abc")
	assert.Error(tst, err)
}
