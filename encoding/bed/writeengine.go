// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"context"
	"io"

	"github.com/grailbio/base/errorreporter"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"
)

// Write is spec.md's C5 WriteEngine: it encodes m and emits d's .bed,
// .fam and .bim files, always in OrientationColMajor. Encoding each column
// is independent and runs in parallel; the encoded blocks are then flushed
// to the .bed file in a single sequential pass in column order, since
// file.File's Writer is a plain io.Writer (no positional writes), matching
// how this package's .bed reads use file.Open for sidecars but a local
// os.File for the positional decode path. On any failure, every file this
// call may have created is removed, per the format's atomic-or-removed
// write guarantee.
func Write[T GenoValue](ctx context.Context, d *Dataset, opts *WriteOptions[T], m *Matrix[T]) (err error) {
	nRow, nCol := m.NRow, m.NCol
	if err := opts.metadata.CheckCounts(nRow, nCol); err != nil {
		return err
	}
	opts.metadata.FillDefaults(nRow, nCol)
	numThreads, err := resolveNumThreads(opts.numThreads)
	if err != nil {
		return err
	}
	vlog.VI(1).Infof("Write %s: %dx%d matrix, numThreads=%d", d.bedPath, nRow, nCol, numThreads)

	blocks, err := encodeColumns(m, opts, numThreads)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			d.Remove(ctx) // nolint: errcheck
		}
	}()

	if err = writeBedFile(ctx, d.bedPath, nRow, blocks); err != nil {
		return err
	}
	if err = writeSidecar(ctx, d.famPath, func(w io.Writer) error { return opts.metadata.WriteFam(w, nRow) }); err != nil {
		return err
	}
	if err = writeSidecar(ctx, d.bimPath, func(w io.Writer) error { return opts.metadata.WriteBim(w, nCol) }); err != nil {
		return err
	}
	return nil
}

// encodeColumns packs every column of m into its own two-bit block,
// sharding the nCol columns across numThreads jobs.
func encodeColumns[T GenoValue](m *Matrix[T], opts *WriteOptions[T], numThreads int) ([][]byte, error) {
	nRow, nCol := m.NRow, m.NCol
	blockSize := packedBlockSize(nRow)
	blocks := make([][]byte, nCol)

	if numThreads > nCol {
		numThreads = nCol
	}
	if numThreads < 1 {
		return blocks, nil
	}

	var errs errorreporter.T
	err := traverse.Each(numThreads, func(jobIdx int) error {
		start, end := jobRange(jobIdx, numThreads, nCol)
		col := make([]T, nRow)
		for c := start; c < end; c++ {
			for r := 0; r < nRow; r++ {
				col[r] = m.At(r, c)
			}
			buf := make([]byte, blockSize)
			if err := encodeBlock(buf, col, nRow, opts.countAllele1, opts.missingValue); err != nil {
				return err
			}
			blocks[c] = buf
		}
		return nil
	})
	errs.Set(err)
	if errs.Err() != nil {
		return nil, errs.Err()
	}
	return blocks, nil
}

// writeBedFile emits the 3-byte column-major header followed by blocks in
// order.
func writeBedFile(ctx context.Context, path string, nRow int, blocks [][]byte) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return wrapErr(Other, err, "creating %s", path)
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := out.Writer(ctx)
	if _, err = w.Write([]byte{magic0, magic1, byte(OrientationColMajor)}); err != nil {
		return wrapErr(Other, err, "writing %s header", path)
	}
	for i, b := range blocks {
		if _, err = w.Write(b); err != nil {
			return wrapErr(Other, err, "writing %s block %d", path, i)
		}
	}
	return nil
}

// writeSidecar opens path for writing and hands it to fn, the same
// open-write-close shape as writeBedFile.
func writeSidecar(ctx context.Context, path string, fn func(io.Writer) error) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return wrapErr(Other, err, "creating %s", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = fn(out.Writer(ctx)); err != nil {
		return err
	}
	return nil
}
