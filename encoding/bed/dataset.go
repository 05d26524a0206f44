// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"context"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
)

// Dataset is a handle on a .bed/.fam/.bim trio, matching spec.md's C6
// Dataset Handle component. Opening a Dataset does no I/O beyond stripping
// the ".bed" suffix to derive sidecar paths; counts and metadata are
// fetched lazily and cached, and the matrix file itself is not opened
// until a Read or Write call.
type Dataset struct {
	bedPath string
	famPath string
	bimPath string

	nRow, nCol int
	haveCounts bool

	metadata     *Metadata
	haveMetadata bool
}

// Open returns a Dataset for the given ".bed" path, deriving the ".fam" and
// ".bim" sidecar paths by replacing its suffix. It does no I/O.
func Open(bedPath string) *Dataset {
	base := strings.TrimSuffix(bedPath, ".bed")
	return &Dataset{
		bedPath: bedPath,
		famPath: base + ".fam",
		bimPath: base + ".bim",
	}
}

// OpenWithSidecars is like Open, but lets the caller override the derived
// .fam/.bim paths (e.g. when they don't follow the "same stem" convention).
func OpenWithSidecars(bedPath, famPath, bimPath string) *Dataset {
	return &Dataset{bedPath: bedPath, famPath: famPath, bimPath: bimPath}
}

// BedPath, FamPath, BimPath return this Dataset's three file paths.
func (d *Dataset) BedPath() string { return d.bedPath }
func (d *Dataset) FamPath() string { return d.famPath }
func (d *Dataset) BimPath() string { return d.bimPath }

// NRow returns the number of individuals. Unless Metadata has already
// parsed the sidecars, the first NRow or NCol call counts the lines of both
// the .fam and the .bim sidecar and caches both counts, so it fails if
// either file is missing; the two counts are not resolved separately. The
// .bed file is not read.
func (d *Dataset) NRow(ctx context.Context) (int, error) {
	if err := d.ensureCounts(ctx); err != nil {
		return 0, err
	}
	return d.nRow, nil
}

// NCol returns the number of variants, analogous to NRow.
func (d *Dataset) NCol(ctx context.Context) (int, error) {
	if err := d.ensureCounts(ctx); err != nil {
		return 0, err
	}
	return d.nCol, nil
}

func (d *Dataset) ensureCounts(ctx context.Context) error {
	if d.haveCounts {
		return nil
	}
	nRow, err := countLines(ctx, d.famPath)
	if err != nil {
		return wrapErr(Other, err, "counting individuals in %s", d.famPath)
	}
	nCol, err := countLines(ctx, d.bimPath)
	if err != nil {
		return wrapErr(Other, err, "counting variants in %s", d.bimPath)
	}
	d.nRow, d.nCol = nRow, nCol
	d.haveCounts = true
	return nil
}

func countLines(ctx context.Context, path string) (int, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer file.CloseAndReport(ctx, f, &err)
	rows, err := parseSidecarLines(f.Reader(ctx), "count")
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Metadata returns this Dataset's Metadata bundle, parsing the .fam and
// .bim sidecars on first call and caching the result. The returned pointer
// is shared; callers that mean to mutate it (e.g. to Skip a field before
// re-reading) should copy what they need first.
func (d *Dataset) Metadata(ctx context.Context) (*Metadata, error) {
	if d.haveMetadata {
		return d.metadata, nil
	}
	m := &Metadata{}
	nRow, err := d.parseFamInto(ctx, m)
	if err != nil {
		return nil, err
	}
	nCol, err := d.parseBimInto(ctx, m)
	if err != nil {
		return nil, err
	}
	d.nRow, d.nCol, d.haveCounts = nRow, nCol, true
	d.metadata, d.haveMetadata = m, true
	return m, nil
}

func (d *Dataset) parseFamInto(ctx context.Context, m *Metadata) (n int, err error) {
	f, err := file.Open(ctx, d.famPath)
	if err != nil {
		return 0, err
	}
	defer file.CloseAndReport(ctx, f, &err)
	return m.ParseFam(f.Reader(ctx))
}

func (d *Dataset) parseBimInto(ctx context.Context, m *Metadata) (n int, err error) {
	f, err := file.Open(ctx, d.bimPath)
	if err != nil {
		return 0, err
	}
	defer file.CloseAndReport(ctx, f, &err)
	return m.ParseBim(f.Reader(ctx))
}

// Fingerprint returns the size in bytes and modification time of the .bed
// file, as reported by the backing store. It is meant for callers that
// want a cheap, best-effort way to notice that a dataset changed on disk
// between two reads; this package never calls it itself, since spec.md
// leaves concurrent-mutation detection out of scope.
func (d *Dataset) Fingerprint(ctx context.Context) (size int64, modTime int64, err error) {
	info, err := file.Stat(ctx, d.bedPath)
	if err != nil {
		return 0, 0, err
	}
	return info.Size(), info.ModTime().Unix(), nil
}

// backgroundContext returns vcontext.Background(), for local-disk
// operations with no caller-supplied deadline. Nothing in this package
// calls it; Dataset.Remove and the other helpers take the caller's context.
func backgroundContext() context.Context { return vcontext.Background() }

// Remove deletes the .bed, .fam and .bim files backing this Dataset, if
// they exist. It is used by WriteEngine to clean up a partially-written
// output on failure (spec.md's atomic-or-removed write guarantee) and is
// exported for callers that want the same behavior directly.
func (d *Dataset) Remove(ctx context.Context) error {
	for _, path := range []string{d.bedPath, d.famPath, d.bimPath} {
		if err := file.Remove(ctx, path); err != nil && !os.IsNotExist(err) {
			return wrapErr(Other, err, "removing %s", path)
		}
	}
	return nil
}
