// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import "math"

// defaultMissingValue returns bed-reader's default missing-value sentinel
// for T: NaN for the float element types, -127 for int8.
func defaultMissingValue[T GenoValue]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32(math.NaN())).(T)
	case float64:
		return any(math.NaN()).(T)
	default:
		return any(int8(-127)).(T)
	}
}

// ReadOptions configures Read/ReadInto: which rows and columns to
// select, how to represent them, and how much parallelism to use. The zero
// value is not usable; construct with NewReadOptions.
type ReadOptions[T GenoValue] struct {
	iidIndex     Index
	sidIndex     Index
	missingValue T
	countAllele1 bool
	outputOrder  Order
	numThreads   *int
}

// NewReadOptions returns a ReadOptions selecting every row and column, with
// bed-reader's standard defaults: output_order column-major, count_allele_1
// true (count allele 1), and T's default missing-value sentinel.
func NewReadOptions[T GenoValue]() *ReadOptions[T] {
	return &ReadOptions[T]{
		iidIndex:     AllIndex(),
		sidIndex:     AllIndex(),
		missingValue: defaultMissingValue[T](),
		countAllele1: true,
		outputOrder:  ColMajor,
	}
}

// WithIid restricts which rows (individuals) are read.
func (o *ReadOptions[T]) WithIid(idx Index) *ReadOptions[T] { o.iidIndex = idx; return o }

// WithSid restricts which columns (variants) are read.
func (o *ReadOptions[T]) WithSid(idx Index) *ReadOptions[T] { o.sidIndex = idx; return o }

// WithMissingValue overrides the sentinel used for missing calls.
func (o *ReadOptions[T]) WithMissingValue(v T) *ReadOptions[T] { o.missingValue = v; return o }

// WithCountAllele1 selects which allele dosage counts, per spec.md's
// Packed byte table.
func (o *ReadOptions[T]) WithCountAllele1(b bool) *ReadOptions[T] { o.countAllele1 = b; return o }

// WithOutputOrder selects the returned Matrix's memory layout.
func (o *ReadOptions[T]) WithOutputOrder(order Order) *ReadOptions[T] { o.outputOrder = order; return o }

// WithNumThreads overrides automatic thread-count resolution; 0 requests
// runtime.NumCPU() threads.
func (o *ReadOptions[T]) WithNumThreads(n int) *ReadOptions[T] { o.numThreads = &n; return o }

// WriteOptions configures Write: the source matrix's encoding
// convention, the metadata to emit alongside it, and parallelism.
type WriteOptions[T GenoValue] struct {
	missingValue T
	countAllele1 bool
	numThreads   *int
	metadata     *Metadata
}

// NewWriteOptions returns a WriteOptions with bed-reader's standard
// defaults and an empty Metadata (FillDefaults will populate it at write
// time).
func NewWriteOptions[T GenoValue]() *WriteOptions[T] {
	return &WriteOptions[T]{
		missingValue: defaultMissingValue[T](),
		countAllele1: true,
		metadata:     &Metadata{},
	}
}

// WithMissingValue overrides the sentinel recognized as a missing call in
// the source matrix.
func (o *WriteOptions[T]) WithMissingValue(v T) *WriteOptions[T] { o.missingValue = v; return o }

// WithCountAllele1 selects which allele the source matrix's dosage counts.
func (o *WriteOptions[T]) WithCountAllele1(b bool) *WriteOptions[T] { o.countAllele1 = b; return o }

// WithNumThreads overrides automatic thread-count resolution.
func (o *WriteOptions[T]) WithNumThreads(n int) *WriteOptions[T] { o.numThreads = &n; return o }

// WithMetadata supplies the .fam/.bim sidecar data to emit; fields left
// FieldUnknown are defaulted at write time.
func (o *WriteOptions[T]) WithMetadata(m *Metadata) *WriteOptions[T] { o.metadata = m; return o }
