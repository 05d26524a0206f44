// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import "math"

// magic0, magic1 are the first two bytes of every ".bed" file.
const (
	magic0 = 0x6c
	magic1 = 0x1b
)

// Orientation selects the on-disk layout of the packed matrix.
type Orientation byte

const (
	// OrientationRowMajor (header byte 0) stores one packed block per row
	// (each block packs the cells of a row, i.e. across columns).
	OrientationRowMajor Orientation = 0
	// OrientationColMajor (header byte 1) stores one packed block per
	// column (each block packs the cells of a column, i.e. across rows).
	// This is what Write always produces.
	OrientationColMajor Orientation = 1
)

// GenoValue is the set of element types a matrix may be decoded into or
// encoded from.
type GenoValue interface {
	~int8 | ~float32 | ~float64
}

// equalsOrMissing reports whether v should be treated as the missing
// sentinel, handling the NaN case (where sentinel != sentinel) via the
// canonical not-equal-to-itself test, per spec's Encode contract.
func equalsOrMissing[T GenoValue](v, sentinel T) bool {
	if sentinel != sentinel {
		return v != v
	}
	return v == sentinel
}

// lookupTable maps the four two-bit codes (0b00, 0b01, 0b10, 0b11) to
// decoded values, for one (countAllele1, missingValue) configuration.
type lookupTable[T GenoValue] [4]T

// newLookupTable builds the 4-entry code->value table from the allele
// counting convention and the missing-value sentinel, per spec.md's Packed
// byte table.
func newLookupTable[T GenoValue](countAllele1 bool, missingValue T) lookupTable[T] {
	if countAllele1 {
		return lookupTable[T]{
			0b00: 2,
			0b01: missingValue,
			0b10: 1,
			0b11: 0,
		}
	}
	return lookupTable[T]{
		0b00: 0,
		0b01: missingValue,
		0b10: 1,
		0b11: 2,
	}
}

// codeForValue is the inverse of lookupTable: it maps a logical cell value
// back to its two-bit code, or reports ok=false if v is neither 0/1/2 nor
// the missing sentinel (encodeBlock's BadValue case). The sentinel is
// tested first, so a sentinel equal to 0, 1 or 2 makes that value encode
// as missing.
func codeForValue[T GenoValue](v T, countAllele1 bool, missingValue T) (code byte, ok bool) {
	if equalsOrMissing(v, missingValue) {
		return 0b01, true
	}
	var zero, one, two byte
	if countAllele1 {
		zero, one, two = 0b11, 0b10, 0b00
	} else {
		zero, one, two = 0b00, 0b10, 0b11
	}
	switch {
	case v == 0:
		return zero, true
	case v == 1:
		return one, true
	case v == 2:
		return two, true
	default:
		return 0, false
	}
}

// validateHeader checks the first three bytes of a ".bed" file.
func validateHeader(header [3]byte) (Orientation, error) {
	if header[0] != magic0 || header[1] != magic1 {
		return 0, newErr(IllFormed, "bad magic bytes %02x %02x, want %02x %02x",
			header[0], header[1], magic0, magic1)
	}
	switch header[2] {
	case 0:
		return OrientationRowMajor, nil
	case 1:
		return OrientationColMajor, nil
	default:
		return 0, newErr(BadMode, "orientation byte %d not in {0,1}", header[2])
	}
}

// expectedFileSize returns 3 + packedBlockSize(rPacked)*cPacked, failing with
// IndexesTooBigForFiles if the arithmetic would overflow an int64.
func expectedFileSize(rPacked, cPacked int) (int64, error) {
	if rPacked < 0 || cPacked < 0 {
		return 0, newErr(IndexesTooBigForFiles, "negative dimension %d x %d", rPacked, cPacked)
	}
	blockSize := int64(packedBlockSize(rPacked))
	if blockSize != 0 && cPacked != 0 {
		if blockSize > (math.MaxInt64-3)/int64(cPacked) {
			return 0, newErr(IndexesTooBigForFiles, "packed size of %d x %d overflows", rPacked, cPacked)
		}
	}
	return 3 + blockSize*int64(cPacked), nil
}

// decodeBlock decodes the n packed codes in packed into dst[:n] using table.
func decodeBlock[T GenoValue](dst []T, packed []byte, n int, table lookupTable[T]) {
	codes := make([]byte, n)
	unpackCodes(codes, packed, n)
	for i := 0; i < n; i++ {
		dst[i] = table[codes[i]]
	}
}

// encodeBlock encodes src[:n] into packed (which must have length >=
// packedBlockSize(n)), returning a BadValue error naming the offending cell
// if any value in src is neither 0/1/2 nor missingValue.
func encodeBlock[T GenoValue](packed []byte, src []T, n int, countAllele1 bool, missingValue T) error {
	codes := make([]byte, n)
	for i := 0; i < n; i++ {
		code, ok := codeForValue(src[i], countAllele1, missingValue)
		if !ok {
			return newErr(BadValue, "cell %d has value %v, not in {0,1,2,missing=%v}", i, src[i], missingValue)
		}
		codes[i] = code
	}
	packCodes(packed, codes, n)
	return nil
}
