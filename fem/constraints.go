// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// InhomTerm holds one term c⋅g(t,x) of the inhomogeneity of a constraint
type InhomTerm struct {
	Coef float64   // coefficient
	Fcn  dbf.T     // function g(t,x)
	X    []float64 // coordinates where g is evaluated
}

// Constraint holds a linear constraint on one equation
//
//   u[Eq] = Σ_k Coefs[k] ⋅ u[Masters[k]] + Σ_m Inhom[m].Coef ⋅ Inhom[m].Fcn(t, Inhom[m].X)
//
//  After Build, no master is itself constrained.
type Constraint struct {
	Key     string       // kind: "periodic", "hanging", "dirichlet" or "zerodispl"
	Eq      int          // constrained equation
	Masters []int        // master equations
	Coefs   []float64    // coefficients of masters
	Inhom   []*InhomTerm // inhomogeneity terms
}

// Inhomogeneity computes the inhomogeneity of constraint at time t
func (o *Constraint) Inhomogeneity(t float64) (g float64) {
	for _, term := range o.Inhom {
		g += term.Coef * term.Fcn.F(t, term.X)
	}
	return
}

// ConstraintArray is an array of Constraint's sorted by equation number
type ConstraintArray []*Constraint

// functions to implement Sort interface
func (o ConstraintArray) Len() int           { return len(o) }
func (o ConstraintArray) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o ConstraintArray) Less(i, j int) bool { return o[i].Eq < o[j].Eq }

// Constraints implements a set of constraints applied to the rows of a linear system.
// Constrained rows are condensed out of the system and recovered afterwards by EnforceExactly.
type Constraints struct {
	Cons   ConstraintArray     // all constraints
	Eq2con map[int]*Constraint // equation => constraint
	T      float64             // time at which inhomogeneities are evaluated
	built  bool                // Build has been called
}

// Init initialises this structure
func (o *Constraints) Init() {
	o.Cons = make([]*Constraint, 0)
	o.Eq2con = make(map[int]*Constraint)
	o.built = false
}

// Set sets a constraint on equation eq. An existent constraint on eq is replaced.
//  fcn -- function g(t,x) giving the inhomogeneity; may be nil
//  x   -- coordinates where fcn is evaluated
func (o *Constraints) Set(key string, eq int, masters []int, coefs []float64, fcn dbf.T, x []float64) (err error) {
	if len(masters) != len(coefs) {
		return chk.Err("constraint on equation %d needs the same number of masters and coefficients. %d != %d", eq, len(masters), len(coefs))
	}
	c := &Constraint{Key: key, Eq: eq, Masters: masters, Coefs: coefs}
	if fcn != nil {
		c.Inhom = []*InhomTerm{{1, fcn, x}}
	}

	// replace existent
	if old, ok := o.Eq2con[eq]; ok {
		*old = *c
		o.built = false
		return
	}

	// add new
	o.Cons = append(o.Cons, c)
	o.Eq2con[eq] = c
	o.built = false
	return
}

// Build sorts the constraints so that all processors handle them in the same order and
// resolves chains of constraints; i.e. masters that are themselves constrained
func (o *Constraints) Build() (err error) {
	sort.Sort(o.Cons)
	state := make(map[int]int) // 0: unvisited, 1: visiting, 2: resolved
	var resolve func(c *Constraint) error
	resolve = func(c *Constraint) error {
		state[c.Eq] = 1
		coefs := make(map[int]float64)
		var inhom []*InhomTerm
		inhom = append(inhom, c.Inhom...)
		for k, m := range c.Masters {
			a := c.Coefs[k]
			mc, constrained := o.Eq2con[m]
			if !constrained {
				coefs[m] += a
				continue
			}
			switch state[m] {
			case 1:
				return chk.Err("constraints form a cycle involving equations %d and %d", c.Eq, m)
			case 0:
				if err := resolve(mc); err != nil {
					return err
				}
			}
			for kk, mm := range mc.Masters {
				coefs[mm] += a * mc.Coefs[kk]
			}
			for _, term := range mc.Inhom {
				inhom = append(inhom, &InhomTerm{a * term.Coef, term.Fcn, term.X})
			}
		}
		c.Masters = make([]int, 0, len(coefs))
		for m := range coefs {
			c.Masters = append(c.Masters, m)
		}
		sort.Ints(c.Masters)
		c.Coefs = make([]float64, len(c.Masters))
		for k, m := range c.Masters {
			c.Coefs[k] = coefs[m]
		}
		c.Inhom = inhom
		state[c.Eq] = 2
		return nil
	}
	for _, c := range o.Cons {
		if state[c.Eq] == 0 {
			err = resolve(c)
			if err != nil {
				return
			}
		}
	}
	o.built = true
	return
}

// IsConstrained tells whether equation eq is constrained
func (o *Constraints) IsConstrained(eq int) bool {
	_, ok := o.Eq2con[eq]
	return ok
}

// NumConstrained returns the number of constrained equations
func (o *Constraints) NumConstrained() int { return len(o.Cons) }

// ConstrainElementMatrix applies the constraints to an element matrix
//
//   Mc = Cᵀ ⋅ M ⋅ C
//
//  where C maps the expanded list of equations ceqs onto the element equations eqs.
//  Rows and columns of constrained equations in ceqs are zeroed and their diagonal set to 1.
//  If no equation in eqs is constrained, M and eqs are returned.
func (o *Constraints) ConstrainElementMatrix(M *la.Matrix, eqs []int) (Mc *la.Matrix, ceqs []int) {
	o.check()
	ceqs, C, ok := o.expand(eqs)
	if !ok {
		return M, eqs
	}
	n := len(eqs)
	Md := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Md.Set(i, j, M.Get(i, j))
		}
	}
	var MC, CtMC mat.Dense
	MC.Mul(Md, C)
	CtMC.Mul(C.T(), &MC)
	nc := len(ceqs)
	Mc = la.NewMatrix(nc, nc)
	for i := 0; i < nc; i++ {
		for j := 0; j < nc; j++ {
			Mc.Set(i, j, CtMC.At(i, j))
		}
	}
	for i, I := range ceqs {
		if o.IsConstrained(I) {
			for j := 0; j < nc; j++ {
				Mc.Set(i, j, 0)
				Mc.Set(j, i, 0)
			}
			Mc.Set(i, i, 1)
		}
	}
	return
}

// ConstrainElementVector applies the constraints to an element vector
//
//   bc = Cᵀ ⋅ (b - M ⋅ g)
//
//  where g holds the inhomogeneities of the constrained equations in eqs. M may be nil, in
//  which case inhomogeneities are ignored. Entries of constrained equations in ceqs are zero.
func (o *Constraints) ConstrainElementVector(b la.Vector, M *la.Matrix, eqs []int) (bc la.Vector, ceqs []int) {
	o.check()
	ceqs, C, ok := o.expand(eqs)
	if !ok {
		return b, eqs
	}
	n := len(eqs)
	r := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		r.SetVec(i, b[i])
	}
	if M != nil {
		g := la.NewVector(n)
		for j, J := range eqs {
			if c, constrained := o.Eq2con[J]; constrained {
				g[j] = c.Inhomogeneity(o.T)
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				r.SetVec(i, r.AtVec(i)-M.Get(i, j)*g[j])
			}
		}
	}
	var Ctr mat.VecDense
	Ctr.MulVec(C.T(), r)
	bc = la.NewVector(len(ceqs))
	for i, I := range ceqs {
		if !o.IsConstrained(I) {
			bc[i] = Ctr.AtVec(i)
		}
	}
	return
}

// EnforceExactly sets the values of constrained equations in v from their masters.
// v must be closed
func (o *Constraints) EnforceExactly(v *Vector) {
	o.check()
	for _, c := range o.Cons {
		val := c.Inhomogeneity(o.T)
		for k, m := range c.Masters {
			val += c.Coefs[k] * v.Data[m]
		}
		v.Data[c.Eq] = val
	}
}

// List returns a simple list logging constraints at time t
func (o *Constraints) List(t float64) (l string) {
	l = "\n==========================================================================\n"
	l += io.Sf("%8s%12s%20s%34s\n", "eq", "key", "masters", io.Sf("inhomogeneity @ t=%g", t))
	l += "--------------------------------------------------------------------------\n"
	for _, c := range o.Cons {
		l += io.Sf("%8d%12s%20v%34.13f\n", c.Eq, c.Key, c.Masters, c.Inhomogeneity(t))
	}
	l += "==========================================================================\n"
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// expand computes the expanded list of equations and the matrix C such that u[eqs] = C ⋅ u[ceqs]
//  ok -- false if no equation in eqs is constrained
func (o *Constraints) expand(eqs []int) (ceqs []int, C *mat.Dense, ok bool) {
	for _, I := range eqs {
		if o.IsConstrained(I) {
			ok = true
			break
		}
	}
	if !ok {
		return
	}
	pos := make(map[int]int)
	add := func(I int) {
		if _, found := pos[I]; !found {
			pos[I] = len(ceqs)
			ceqs = append(ceqs, I)
		}
	}
	for _, I := range eqs {
		add(I)
		if c, constrained := o.Eq2con[I]; constrained {
			for _, m := range c.Masters {
				add(m)
			}
		}
	}
	C = mat.NewDense(len(eqs), len(ceqs), nil)
	for i, I := range eqs {
		if c, constrained := o.Eq2con[I]; constrained {
			for k, m := range c.Masters {
				C.Set(i, pos[m], C.At(i, pos[m])+c.Coefs[k])
			}
			continue
		}
		C.Set(i, pos[I], 1)
	}
	return
}

// check panics if Build was not called
func (o *Constraints) check() {
	if !o.built {
		chk.Panic("constraints must be built before use")
	}
}
