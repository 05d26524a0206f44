// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

// This file adapts the pack/unpack technique in biosimd's generic (non-SIMD)
// nibble packer to this format's two-bit codes. biosimd packs two 4-bit
// nibbles per byte (DNA bases); here there are four 2-bit codes per byte
// (genotype calls), low bits first rather than high-bits-first, per this
// format's header (spec.md's Packed byte layout).

// packedBlockSize returns the number of bytes needed to pack n two-bit codes.
func packedBlockSize(n int) int {
	return (n + 3) / 4
}

// unpackCodes decodes the n low-bits-first two-bit codes packed into src into
// dst, which must have length >= n. It panics if src is too short.
func unpackCodes(dst []byte, src []byte, n int) {
	nFullByte := n / 4
	if len(src) < packedBlockSize(n) {
		panic("unpackCodes: src too short")
	}
	for i := 0; i < nFullByte; i++ {
		b := src[i]
		dst[4*i] = b & 3
		dst[4*i+1] = (b >> 2) & 3
		dst[4*i+2] = (b >> 4) & 3
		dst[4*i+3] = (b >> 6) & 3
	}
	if rem := n - nFullByte*4; rem > 0 {
		b := src[nFullByte]
		for i := 0; i < rem; i++ {
			dst[4*nFullByte+i] = (b >> uint(2*i)) & 3
		}
	}
}

// packCodes encodes the n two-bit codes in src (each in [0,4)) into dst,
// which must have length >= packedBlockSize(n). It panics if dst is too
// short.
func packCodes(dst []byte, src []byte, n int) {
	nFullByte := n / 4
	if len(dst) < packedBlockSize(n) {
		panic("packCodes: dst too short")
	}
	for i := 0; i < nFullByte; i++ {
		dst[i] = src[4*i] | src[4*i+1]<<2 | src[4*i+2]<<4 | src[4*i+3]<<6
	}
	if rem := n - nFullByte*4; rem > 0 {
		var b byte
		for i := 0; i < rem; i++ {
			b |= src[4*nFullByte+i] << uint(2*i)
		}
		dst[nFullByte] = b
	}
}
