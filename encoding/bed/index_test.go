// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIndex(t *testing.T) {
	idx := AllIndex()
	n, err := idx.Len(5, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	pos, err := idx.ToPositions(5, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, pos)
}

func TestSingleIndex(t *testing.T) {
	pos, err := SingleIndex(2).ToPositions(5, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, pos)

	pos, err = SingleIndex(-1).ToPositions(5, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, pos)

	_, err = SingleIndex(5).ToPositions(5, IidAxis)
	require.Error(t, err)
	assert.Equal(t, IidIndexTooBig, KindOf(err))

	_, err = SingleIndex(-6).ToPositions(5, SidAxis)
	require.Error(t, err)
	assert.Equal(t, SidIndexTooBig, KindOf(err))
}

func TestVectorIndex(t *testing.T) {
	pos, err := VectorIndex([]int{3, 0, -1, 0}).ToPositions(4, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 3, 0}, pos)
}

func TestBoolIndex(t *testing.T) {
	pos, err := BoolIndex([]bool{true, false, true, true}).ToPositions(4, SidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, pos)

	_, err = BoolIndex([]bool{true, false}).ToPositions(4, SidAxis)
	require.Error(t, err)
	assert.Equal(t, BoolArrayVectorWrongLength, KindOf(err))
}

func TestRangeIndex(t *testing.T) {
	pos, err := RangeIndex(Int(1), Int(4)).ToPositions(10, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, pos)

	pos, err = RangeIndex(nil, nil).ToPositions(3, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, pos)

	_, err = RangeIndex(Int(5), Int(2)).ToPositions(10, IidAxis)
	require.Error(t, err)
	assert.Equal(t, StartGreaterThanEnd, KindOf(err))

	_, err = RangeIndex(Int(11), nil).ToPositions(10, IidAxis)
	require.Error(t, err)
	assert.Equal(t, StartGreaterThanCount, KindOf(err))

	_, err = RangeIndex(nil, Int(11)).ToPositions(10, IidAxis)
	require.Error(t, err)
	assert.Equal(t, EndGreaterThanCount, KindOf(err))
}

func TestStrideIndexPositiveStep(t *testing.T) {
	pos, err := SteppedIndex(Int(1), Int(9), 2).ToPositions(10, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 7}, pos)
}

func TestStrideIndexNegativeStep(t *testing.T) {
	pos, err := SteppedIndex(nil, nil, -1).ToPositions(5, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, pos)
}

func TestStrideIndexNegativeBounds(t *testing.T) {
	pos, err := StrideIndex(Int(-3), nil).ToPositions(10, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8, 9}, pos)
}

func TestStrideIndexStepZero(t *testing.T) {
	_, err := SteppedIndex(nil, nil, 0).ToPositions(10, IidAxis)
	require.Error(t, err)
	assert.Equal(t, StepZero, KindOf(err))
}

func TestStrideLenMatchesToPositions(t *testing.T) {
	idx := SteppedIndex(Int(1), Int(9), 2)
	n, err := idx.Len(10, IidAxis)
	require.NoError(t, err)
	pos, err := idx.ToPositions(10, IidAxis)
	require.NoError(t, err)
	assert.Equal(t, len(pos), n)
}
