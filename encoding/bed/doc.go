// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package bed implements a reader and writer for the PLINK 1 binary genotype
// format: a bit-packed matrix file (".bed") accompanied by two whitespace-
// delimited text sidecars describing its rows (".fam", one line per
// individual) and its columns (".bim", one line per variant).
//
// A Dataset is opened with Open, which defers almost all work: the sidecars
// are not parsed until a metadata field or a row/column count is actually
// requested, and the matrix file is not even opened until a Read call. Reads
// are randomly-indexed: callers select an arbitrary, possibly repeated,
// possibly reordered set of rows and columns via Index values, and Read fills
// a caller-chosen numeric representation (int8, float32 or float64) directly.
//
// Package bed does no compression and no schema evolution: the file layout
// is exactly three bytes of header followed by contiguous two-bit-per-cell
// packed blocks, as described in the format's original specification.
package bed
