// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixColMajorLayout(t *testing.T) {
	m := NewMatrix[int8](2, 3, ColMajor)
	m.Set(0, 0, 1)
	m.Set(1, 0, 2)
	m.Set(0, 1, 3)
	assert.Equal(t, int8(1), m.At(0, 0))
	assert.Equal(t, int8(2), m.At(1, 0))
	assert.Equal(t, int8(3), m.At(0, 1))
	assert.Equal(t, []int8{1, 2}, m.Column(0))
}

func TestMatrixRowMajorLayout(t *testing.T) {
	m := NewMatrix[int8](2, 3, RowMajor)
	m.Set(0, 0, 1)
	m.Set(0, 1, 2)
	m.Set(0, 2, 3)
	assert.Equal(t, []int8{1, 2, 3}, m.Row(0))
}

func TestMatrixColumnPanicsOnRowMajor(t *testing.T) {
	m := NewMatrix[int8](2, 2, RowMajor)
	assert.Panics(t, func() { m.Column(0) })
}

func TestMatrixRowPanicsOnColMajor(t *testing.T) {
	m := NewMatrix[int8](2, 2, ColMajor)
	assert.Panics(t, func() { m.Row(0) })
}
