// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaderOK(t *testing.T) {
	o, err := validateHeader([3]byte{magic0, magic1, 0})
	require.NoError(t, err)
	assert.Equal(t, OrientationRowMajor, o)

	o, err = validateHeader([3]byte{magic0, magic1, 1})
	require.NoError(t, err)
	assert.Equal(t, OrientationColMajor, o)
}

func TestValidateHeaderBadMagic(t *testing.T) {
	_, err := validateHeader([3]byte{0, 0, 1})
	require.Error(t, err)
	assert.Equal(t, IllFormed, KindOf(err))
}

func TestValidateHeaderBadMode(t *testing.T) {
	_, err := validateHeader([3]byte{magic0, magic1, 2})
	require.Error(t, err)
	assert.Equal(t, BadMode, KindOf(err))
}

func TestExpectedFileSize(t *testing.T) {
	size, err := expectedFileSize(5, 3) // packedBlockSize(5)=2, so 3+2*3=9
	require.NoError(t, err)
	assert.EqualValues(t, 9, size)
}

func TestCodeForValueCountAllele2(t *testing.T) {
	missing := int8(-127)
	for v, want := range map[int8]byte{0: 0b00, 1: 0b10, 2: 0b11} {
		code, ok := codeForValue(v, false, missing)
		require.True(t, ok)
		assert.Equal(t, want, code)
	}
	code, ok := codeForValue(missing, false, missing)
	require.True(t, ok)
	assert.Equal(t, byte(0b01), code)

	_, ok = codeForValue(int8(3), false, missing)
	assert.False(t, ok)
}

func TestCodeForValueCountAllele1(t *testing.T) {
	missing := int8(-127)
	for v, want := range map[int8]byte{0: 0b11, 1: 0b10, 2: 0b00} {
		code, ok := codeForValue(v, true, missing)
		require.True(t, ok)
		assert.Equal(t, want, code)
	}
}

func TestNaNMissingValue(t *testing.T) {
	missing := float32(math.NaN())
	code, ok := codeForValue(float32(math.NaN()), false, missing)
	require.True(t, ok)
	assert.Equal(t, byte(0b01), code)

	table := newLookupTable[float32](false, missing)
	assert.True(t, table[0b01] != table[0b01]) // decoded missing is NaN
}

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	missing := int8(-127)
	src := []int8{0, 1, 2, missing, 2, 0, 1, missing, 0}
	n := len(src)
	buf := make([]byte, packedBlockSize(n))
	require.NoError(t, encodeBlock(buf, src, n, false, missing))

	dst := make([]int8, n)
	decodeBlock(dst, buf, n, newLookupTable[int8](false, missing))
	assert.Equal(t, src, dst)
}

func TestEncodeBlockBadValue(t *testing.T) {
	missing := int8(-127)
	src := []int8{0, 1, 5}
	buf := make([]byte, packedBlockSize(3))
	err := encodeBlock(buf, src, 3, false, missing)
	require.Error(t, err)
	assert.Equal(t, BadValue, KindOf(err))
}
