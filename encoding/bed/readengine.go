// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"context"
	"os"

	"github.com/grailbio/base/errorreporter"
	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"
)

// Read is spec.md's C4 ReadEngine: it selects opts.iidIndex rows and
// opts.sidIndex columns from d's .bed file, decodes them into a freshly
// allocated Matrix, and returns it. Most of the work is in ReadInto; Read
// just allocates the destination first.
func Read[T GenoValue](ctx context.Context, d *Dataset, opts *ReadOptions[T]) (*Matrix[T], error) {
	nRow, err := d.NRow(ctx)
	if err != nil {
		return nil, err
	}
	nCol, err := d.NCol(ctx)
	if err != nil {
		return nil, err
	}
	rowLen, err := opts.iidIndex.Len(nRow, IidAxis)
	if err != nil {
		return nil, err
	}
	colLen, err := opts.sidIndex.Len(nCol, SidAxis)
	if err != nil {
		return nil, err
	}
	m := NewMatrix[T](rowLen, colLen, opts.outputOrder)
	if err := ReadInto(ctx, d, opts, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadInto is like Read, but decodes into a caller-supplied Matrix, which
// must already have the exact shape the selection implies; this lets
// callers reuse one allocation across repeated reads of the same shape.
func ReadInto[T GenoValue](ctx context.Context, d *Dataset, opts *ReadOptions[T], dst *Matrix[T]) error {
	nRow, err := d.NRow(ctx)
	if err != nil {
		return err
	}
	nCol, err := d.NCol(ctx)
	if err != nil {
		return err
	}
	rows, err := opts.iidIndex.ToPositions(nRow, IidAxis)
	if err != nil {
		return err
	}
	cols, err := opts.sidIndex.ToPositions(nCol, SidAxis)
	if err != nil {
		return err
	}
	if dst.NRow != len(rows) || dst.NCol != len(cols) {
		return newErr(InvalidShape, "destination is %dx%d, selection is %dx%d", dst.NRow, dst.NCol, len(rows), len(cols))
	}

	f, err := os.Open(d.bedPath)
	if err != nil {
		return wrapErr(Other, err, "opening %s", d.bedPath)
	}
	defer f.Close()

	var header [3]byte
	if _, err := f.ReadAt(header[:], 0); err != nil {
		return wrapErr(IllFormed, err, "reading %s header", d.bedPath)
	}
	orientation, err := validateHeader(header)
	if err != nil {
		return err
	}

	rPacked, cPacked := nRow, nCol
	if orientation == OrientationRowMajor {
		rPacked, cPacked = nCol, nRow
	}
	wantSize, err := expectedFileSize(rPacked, cPacked)
	if err != nil {
		return err
	}
	if info, statErr := f.Stat(); statErr == nil && info.Size() != wantSize {
		return newErr(IllFormed, "%s is %d bytes, want %d for a %dx%d matrix", d.bedPath, info.Size(), wantSize, nRow, nCol)
	}

	table := newLookupTable[T](opts.countAllele1, opts.missingValue)
	numThreads, err := resolveNumThreads(opts.numThreads)
	if err != nil {
		return err
	}
	vlog.VI(1).Infof("ReadInto %s: %dx%d selection, orientation=%v, numThreads=%d", d.bedPath, len(rows), len(cols), orientation, numThreads)

	if orientation == OrientationColMajor {
		return readColumnMajor(f, dst, rows, cols, nRow, table, numThreads)
	}
	return readRowMajor(f, dst, rows, cols, nCol, table, numThreads)
}

// jobRange splits [0,n) into at most numJobs contiguous, roughly equal
// pieces, the way pileup's main loop shards its work across
// traverse.Each(parallelism, ...) jobs.
func jobRange(jobIdx, numJobs, n int) (start, end int) {
	start = (jobIdx * n) / numJobs
	end = ((jobIdx + 1) * n) / numJobs
	return start, end
}

// readColumnMajor decodes a column-major (orientation byte 1) .bed file:
// one packed block of nRow codes per on-disk column. Work is sharded across
// numThreads jobs, each reading its columns' on-disk blocks directly via
// ReadAt, so concurrent jobs never share file-offset state, and each writes
// into disjoint Matrix cells, so no locking is needed.
func readColumnMajor[T GenoValue](f *os.File, dst *Matrix[T], rows, cols []int, nRow int, table lookupTable[T], numThreads int) error {
	blockSize := packedBlockSize(nRow)
	if numThreads > len(cols) {
		numThreads = len(cols)
	}
	if numThreads < 1 {
		return nil
	}
	var errs errorreporter.T
	err := traverse.Each(numThreads, func(jobIdx int) error {
		start, end := jobRange(jobIdx, numThreads, len(cols))
		packed := make([]byte, blockSize)
		full := make([]T, nRow)
		for outCol := start; outCol < end; outCol++ {
			onDiskCol := cols[outCol]
			offset := int64(3) + int64(onDiskCol)*int64(blockSize)
			if _, err := f.ReadAt(packed, offset); err != nil {
				return wrapErr(Other, err, "reading column %d", onDiskCol)
			}
			decodeBlock(full, packed, nRow, table)
			for outRow, onDiskRow := range rows {
				dst.Set(outRow, outCol, full[onDiskRow])
			}
		}
		return nil
	})
	errs.Set(err)
	return errs.Err()
}

// readRowMajor decodes a row-major (orientation byte 0) .bed file: one
// packed block of nCol codes per on-disk row.
func readRowMajor[T GenoValue](f *os.File, dst *Matrix[T], rows, cols []int, nCol int, table lookupTable[T], numThreads int) error {
	blockSize := packedBlockSize(nCol)
	if numThreads > len(rows) {
		numThreads = len(rows)
	}
	if numThreads < 1 {
		return nil
	}
	var errs errorreporter.T
	err := traverse.Each(numThreads, func(jobIdx int) error {
		start, end := jobRange(jobIdx, numThreads, len(rows))
		packed := make([]byte, blockSize)
		full := make([]T, nCol)
		for outRow := start; outRow < end; outRow++ {
			onDiskRow := rows[outRow]
			offset := int64(3) + int64(onDiskRow)*int64(blockSize)
			if _, err := f.ReadAt(packed, offset); err != nil {
				return wrapErr(Other, err, "reading row %d", onDiskRow)
			}
			decodeBlock(full, packed, nCol, table)
			for outCol, onDiskCol := range cols {
				dst.Set(outRow, outCol, full[onDiskCol])
			}
		}
		return nil
	})
	errs.Set(err)
	return errs.Err()
}
