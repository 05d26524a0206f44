// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackedBlockSize(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, packedBlockSize(c.n), "n=%d", c.n)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 5, 7, 8, 37} {
		codes := make([]byte, n)
		for i := range codes {
			codes[i] = byte(i % 4)
		}
		packed := make([]byte, packedBlockSize(n))
		packCodes(packed, codes, n)

		got := make([]byte, n)
		unpackCodes(got, packed, n)
		assert.Equal(t, codes, got, "n=%d", n)
	}
}

func TestUnpackCodesBitOrder(t *testing.T) {
	// 0b11_10_01_00 packs codes [0,1,2,3] low-bits-first.
	packed := []byte{0b11_10_01_00}
	got := make([]byte, 4)
	unpackCodes(got, packed, 4)
	assert.Equal(t, []byte{0, 1, 2, 3}, got)
}
