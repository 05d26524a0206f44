// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

// Axis distinguishes the row (individual/sample) axis from the column
// (variant/SNP) axis, purely so an out-of-range Index value is reported
// with the right error kind.
type Axis int

const (
	// IidAxis is the row axis (individuals/samples).
	IidAxis Axis = iota
	// SidAxis is the column axis (variants/SNPs).
	SidAxis
)

func (a Axis) tooBigKind() ErrKind {
	if a == SidAxis {
		return SidIndexTooBig
	}
	return IidIndexTooBig
}

func (a Axis) name() string {
	if a == SidAxis {
		return "sid"
	}
	return "iid"
}

type indexKind int

const (
	indexAll indexKind = iota
	indexSingle
	indexVector
	indexBool
	indexRange
	indexStride
)

// Index is a lazily-evaluated selection along one axis: the union of "all",
// "single position", "vector of positions", "boolean mask", "unsigned
// range" and "signed strided slice", matching spec.md's Index variants. The
// zero Index is AllIndex().
//
// Index exposes exactly two operations, Len and ToPositions, keeping
// negative-index resolution internal so that callers (the read/write
// engines) only ever see plain non-negative positions.
type Index struct {
	kind indexKind

	single int
	vector []int
	mask   []bool

	// rangeStart/rangeEnd are nil for "default" (0 / N respectively); both
	// variants share these fields, with indexRange requiring them
	// non-negative as given and indexStride allowing negative values
	// (resolved against N, and required to resolve to >= 0).
	rangeStart, rangeEnd *int
	strideStep           int
}

// AllIndex selects every position along the axis, in order.
func AllIndex() Index { return Index{kind: indexAll} }

// SingleIndex selects one position. A negative value counts from the end.
func SingleIndex(i int) Index { return Index{kind: indexSingle, single: i} }

// VectorIndex selects the given positions, in the given order, possibly with
// repeats. A negative value counts from the end.
func VectorIndex(positions []int) Index {
	return Index{kind: indexVector, vector: append([]int(nil), positions...)}
}

// BoolIndex selects the positions where mask is true, in order. mask's
// length must equal the axis length or ToPositions/Len fails with
// BoolArrayVectorWrongLength.
func BoolIndex(mask []bool) Index {
	return Index{kind: indexBool, mask: append([]bool(nil), mask...)}
}

// RangeIndex selects the unsigned half-open range [start, end). Either bound
// may be nil to mean "from the beginning" / "to the end".
func RangeIndex(start, end *int) Index {
	return Index{kind: indexRange, rangeStart: start, rangeEnd: end}
}

// StrideIndex selects a strided slice with step 1. Either bound may be nil
// (meaning 0 / N respectively), and may be negative (counting from the
// end).
func StrideIndex(start, end *int) Index {
	return Index{kind: indexStride, rangeStart: start, rangeEnd: end, strideStep: 1}
}

// SteppedIndex selects a strided slice with an explicit, possibly negative,
// step. step == 0 fails with StepZero.
func SteppedIndex(start, end *int, step int) Index {
	return Index{kind: indexStride, rangeStart: start, rangeEnd: end, strideStep: step}
}

// Int is a convenience for constructing the *int bounds RangeIndex and
// StrideIndex take.
func Int(i int) *int { return &i }

// normalizeSigned resolves a possibly-negative position against axis length
// n: non-negative values pass through, negative values count from the end.
func normalizeSigned(v, n int, axis Axis) (int, error) {
	p := v
	if p < 0 {
		p = n + p
	}
	if p < 0 || p >= n {
		return 0, newErr(axis.tooBigKind(), "%s index %d out of range for axis length %d", axis.name(), v, n)
	}
	return p, nil
}

// Len returns the number of positions this Index selects out of an axis of
// length n, without materializing them.
func (idx Index) Len(n int, axis Axis) (int, error) {
	switch idx.kind {
	case indexAll:
		return n, nil
	case indexSingle:
		if _, err := normalizeSigned(idx.single, n, axis); err != nil {
			return 0, err
		}
		return 1, nil
	case indexVector:
		return len(idx.vector), nil
	case indexBool:
		if len(idx.mask) != n {
			return 0, newErr(BoolArrayVectorWrongLength, "%s mask length %d != axis length %d", axis.name(), len(idx.mask), n)
		}
		count := 0
		for _, b := range idx.mask {
			if b {
				count++
			}
		}
		return count, nil
	case indexRange:
		s, e, err := idx.resolveRange(n, axis)
		if err != nil {
			return 0, err
		}
		return e - s, nil
	case indexStride:
		return idx.strideLen(n, axis)
	default:
		panic("bed: unknown index kind")
	}
}

// ToPositions materializes the concrete, ordered list of positions this
// Index selects out of an axis of length n.
func (idx Index) ToPositions(n int, axis Axis) ([]int, error) {
	switch idx.kind {
	case indexAll:
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	case indexSingle:
		p, err := normalizeSigned(idx.single, n, axis)
		if err != nil {
			return nil, err
		}
		return []int{p}, nil
	case indexVector:
		out := make([]int, len(idx.vector))
		for i, v := range idx.vector {
			p, err := normalizeSigned(v, n, axis)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case indexBool:
		if len(idx.mask) != n {
			return nil, newErr(BoolArrayVectorWrongLength, "%s mask length %d != axis length %d", axis.name(), len(idx.mask), n)
		}
		var out []int
		for i, b := range idx.mask {
			if b {
				out = append(out, i)
			}
		}
		return out, nil
	case indexRange:
		s, e, err := idx.resolveRange(n, axis)
		if err != nil {
			return nil, err
		}
		out := make([]int, 0, e-s)
		for i := s; i < e; i++ {
			out = append(out, i)
		}
		return out, nil
	case indexStride:
		return idx.strideToPositions(n, axis)
	default:
		panic("bed: unknown index kind")
	}
}

// resolveRange applies RangeIndex's defaulting and validation: start
// defaults to 0, end defaults to n; both must be within [0,n], and
// start<=end. A negative bound fails with axis's too-big kind.
func (idx Index) resolveRange(n int, axis Axis) (start, end int, err error) {
	start = 0
	if idx.rangeStart != nil {
		start = *idx.rangeStart
	}
	end = n
	if idx.rangeEnd != nil {
		end = *idx.rangeEnd
	}
	if start < 0 || end < 0 {
		return 0, 0, newErr(axis.tooBigKind(), "%s range bounds %d..%d must be non-negative", axis.name(), start, end)
	}
	if start > n {
		return 0, 0, newErr(StartGreaterThanCount, "range start %d > axis length %d", start, n)
	}
	if end > n {
		return 0, 0, newErr(EndGreaterThanCount, "range end %d > axis length %d", end, n)
	}
	if start > end {
		return 0, 0, newErr(StartGreaterThanEnd, "range start %d > end %d", start, end)
	}
	return start, end, nil
}

// resolveStrideBounds applies StrideIndex/SteppedIndex's defaulting and
// negative-index resolution, without yet validating against the step's
// sign-dependent ordering.
func (idx Index) resolveStrideBounds(n int, axis Axis) (start, end int, err error) {
	rawStart, rawEnd := 0, n
	if idx.rangeStart != nil {
		rawStart = *idx.rangeStart
	}
	if idx.rangeEnd != nil {
		rawEnd = *idx.rangeEnd
	}
	if rawStart < 0 {
		rawStart = n + rawStart
	}
	if rawEnd < 0 {
		rawEnd = n + rawEnd
	}
	if rawStart < 0 || rawEnd < 0 {
		return 0, 0, newErr(axis.tooBigKind(), "%s stride bounds resolve to %d..%d, below 0", axis.name(), rawStart, rawEnd)
	}
	if rawStart > n {
		return 0, 0, newErr(StartGreaterThanCount, "stride start resolves to %d > axis length %d", rawStart, n)
	}
	if rawEnd > n {
		return 0, 0, newErr(EndGreaterThanCount, "stride end resolves to %d > axis length %d", rawEnd, n)
	}
	return rawStart, rawEnd, nil
}

func (idx Index) strideLen(n int, axis Axis) (int, error) {
	if idx.strideStep == 0 {
		return 0, newErr(StepZero, "stride step is 0")
	}
	start, end, err := idx.resolveStrideBounds(n, axis)
	if err != nil {
		return 0, err
	}
	if start >= end {
		return 0, nil
	}
	step := idx.strideStep
	if step < 0 {
		step = -step
	}
	return (end - start + step - 1) / step, nil
}

func (idx Index) strideToPositions(n int, axis Axis) ([]int, error) {
	if idx.strideStep == 0 {
		return nil, newErr(StepZero, "stride step is 0")
	}
	start, end, err := idx.resolveStrideBounds(n, axis)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, nil
	}
	if idx.strideStep > 0 {
		out := make([]int, 0, (end-start+idx.strideStep-1)/idx.strideStep)
		for i := start; i < end; i += idx.strideStep {
			out = append(out, i)
		}
		return out, nil
	}
	// Negative step: the same index set as the positive-step case over the
	// same [start,end) bounds, in reverse order, starting from the largest
	// position of that set.
	step := -idx.strideStep
	count := (end - start + step - 1) / step
	out := make([]int, count)
	pos := start + (count-1)*step
	for i := 0; i < count; i++ {
		out[i] = pos
		pos -= step
	}
	return out, nil
}
