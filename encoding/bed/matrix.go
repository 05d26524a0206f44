// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

// Order selects the memory layout of a Matrix's backing slice.
type Order int

const (
	// ColMajor lays the backing slice out column-by-column (Fortran order).
	// This is the package default, matching spec.md's output_order default.
	ColMajor Order = iota
	// RowMajor lays the backing slice out row-by-row (C order).
	RowMajor
)

// Matrix is a caller-owned, densely packed 2-D array of decoded genotype
// values, generic over the element type, with a choice of memory layout.
type Matrix[T GenoValue] struct {
	NRow, NCol int
	Order      Order
	data       []T
}

// NewMatrix allocates a zero-valued nRow x nCol matrix with the given
// layout.
func NewMatrix[T GenoValue](nRow, nCol int, order Order) *Matrix[T] {
	return &Matrix[T]{NRow: nRow, NCol: nCol, Order: order, data: make([]T, nRow*nCol)}
}

// index returns the backing-slice offset of (row, col).
func (m *Matrix[T]) index(row, col int) int {
	if m.Order == RowMajor {
		return row*m.NCol + col
	}
	return col*m.NRow + row
}

// At returns the value at (row, col).
func (m *Matrix[T]) At(row, col int) T {
	return m.data[m.index(row, col)]
}

// Set assigns the value at (row, col).
func (m *Matrix[T]) Set(row, col int, v T) {
	m.data[m.index(row, col)] = v
}

// Column returns a mutable view of column col as a length-NRow slice, valid
// only when Order == ColMajor (the default output order).
func (m *Matrix[T]) Column(col int) []T {
	if m.Order != ColMajor {
		panic("bed: Matrix.Column requires ColMajor order")
	}
	return m.data[col*m.NRow : (col+1)*m.NRow]
}

// Row returns a mutable view of row r as a length-NCol slice, valid only
// when Order == RowMajor.
func (m *Matrix[T]) Row(r int) []T {
	if m.Order != RowMajor {
		panic("bed: Matrix.Row requires RowMajor order")
	}
	return m.data[r*m.NCol : (r+1)*m.NCol]
}

// Raw returns the backing slice, in the layout given by m.Order.
func (m *Matrix[T]) Raw() []T { return m.data }
