// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/james-bowman/sparse"
)

// Matrix holds a square sparse matrix distributed as a sum of local parts
//
//   A = Σ_proc A_proc
//
//  Each processor adds the contributions of its own elements into A_proc. Products and the
//  diagonal are combined over all processors; thus they are collective calls.
type Matrix struct {

	// hints
	SPD               bool // matrix is symmetric positive-definite
	SymmetryEternal   bool // symmetry is kept by all further modifications
	IgnoreZeroEntries bool // do not store zero contributions

	// data
	N      int         // number of rows and columns
	comm   *Comm       // communicator
	dok    *sparse.DOK // local contributions
	csr    *sparse.CSR // local contributions compressed by Close
	closed bool        // csr is up to date
}

// NewMatrix returns a new n×n matrix
func NewMatrix(comm *Comm, n int) (o *Matrix) {
	return &Matrix{
		N:    n,
		comm: comm,
		dok:  sparse.NewDOK(n, n),
	}
}

// Add adds value to the local contribution at (i,j)
func (o *Matrix) Add(i, j int, value float64) {
	if value == 0 && o.IgnoreZeroEntries {
		return
	}
	o.dok.Set(i, j, o.dok.At(i, j)+value)
	o.closed = false
}

// AddMatrix scatter-adds a dense element matrix with row and column numbers given by eqs
func (o *Matrix) AddMatrix(M *la.Matrix, eqs []int) {
	if M.M != len(eqs) || M.N != len(eqs) {
		chk.Panic("cannot add %d×%d matrix with %d equations", M.M, M.N, len(eqs))
	}
	for i, I := range eqs {
		for j, J := range eqs {
			o.Add(I, J, M.Get(i, j))
		}
	}
}

// Close compresses the local contributions. Must be called after additions and before
// products. Collective
func (o *Matrix) Close() {
	o.compress()
	o.comm.Barrier()
}

// Closed tells whether the matrix is ready for products
func (o *Matrix) Closed() bool { return o.closed }

// NNZ returns the number of local entries
func (o *Matrix) NNZ() int { return o.dok.NNZ() }

// MulVec computes y = A x. Collective
func (o *Matrix) MulVec(y, x *Vector) {
	o.check()
	y.Data.Fill(0)
	o.csr.MulVecTo(y.Data, false, x.Data)
	o.comm.AllReduceSum(y.Data)
}

// Diagonal writes the diagonal of A into d. Collective
func (o *Matrix) Diagonal(d *Vector) {
	for i := 0; i < o.N; i++ {
		d.Data[i] = o.dok.At(i, i)
	}
	o.comm.AllReduceSum(d.Data)
}

// ZeroRowsColumns zeroes the given rows and columns and places diag at their diagonals.
// rows must be the same on all processors. Collective
func (o *Matrix) ZeroRowsColumns(rows []int, diag float64) {
	if len(rows) == 0 {
		return
	}
	zero := make(map[int]bool, len(rows))
	for _, r := range rows {
		zero[r] = true
	}
	o.dok.DoNonZero(func(i, j int, v float64) {
		if zero[i] || zero[j] {
			o.dok.Set(i, j, 0)
		}
	})
	if o.comm.Root() {
		for r := range zero {
			o.dok.Set(r, r, diag)
		}
	}
	o.closed = false
	o.Close()
}

// Dense returns the global matrix as a dense one. Collective; for small systems only
func (o *Matrix) Dense() (A *la.Matrix) {
	A = la.NewMatrix(o.N, o.N)
	o.dok.DoNonZero(func(i, j int, v float64) {
		A.Set(i, j, v)
	})
	o.comm.AllReduceSum(A.Data)
	return
}

// Triplet returns the local contributions in triplet form; e.g. for direct solvers
func (o *Matrix) Triplet() (T *la.Triplet) {
	ents := o.entries()
	T = la.NewTriplet(o.N, o.N, len(ents))
	for _, e := range ents {
		T.Put(e.i, e.j, e.v)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// entry holds one local entry
type entry struct {
	i, j int
	v    float64
}

// entries returns the local entries sorted by row and then column
func (o *Matrix) entries() (ents []entry) {
	ents = make([]entry, 0, o.dok.NNZ())
	o.dok.DoNonZero(func(i, j int, v float64) {
		if v == 0 && o.IgnoreZeroEntries {
			return
		}
		ents = append(ents, entry{i, j, v})
	})
	sort.Slice(ents, func(a, b int) bool {
		if ents[a].i == ents[b].i {
			return ents[a].j < ents[b].j
		}
		return ents[a].i < ents[b].i
	})
	return
}

// compress builds the CSR structure
func (o *Matrix) compress() {
	ents := o.entries()
	ia := make([]int, o.N+1)
	ja := make([]int, len(ents))
	data := make([]float64, len(ents))
	for k, e := range ents {
		ia[e.i+1]++
		ja[k] = e.j
		data[k] = e.v
	}
	for i := 0; i < o.N; i++ {
		ia[i+1] += ia[i]
	}
	o.csr = sparse.NewCSR(o.N, o.N, ia, ja, data)
	o.closed = true
}

// check panics if the matrix is not closed
func (o *Matrix) check() {
	if !o.closed {
		chk.Panic("matrix must be closed before use")
	}
}
