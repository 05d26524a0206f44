// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind classifies a failure the way bed-reader's own error enum does, so
// callers can branch on failure class instead of matching strings.
type ErrKind int

const (
	// Other is a catch-all for errors that don't fit one of the named kinds
	// below (typically a wrapped I/O or parse error).
	Other ErrKind = iota
	// IllFormed means the header's magic bytes were wrong, or the file's
	// length disagreed with its declared dimensions.
	IllFormed
	// BadMode means the orientation byte was not 0 or 1.
	BadMode
	// BadValue means a write input cell was neither 0/1/2 nor the missing
	// sentinel.
	BadValue
	// IidIndexTooBig means a row index value was out of range.
	IidIndexTooBig
	// SidIndexTooBig means a column index value was out of range.
	SidIndexTooBig
	// IndexesTooBigForFiles means the declared dimensions overflow the
	// packed-size arithmetic.
	IndexesTooBigForFiles
	// InvalidShape means a caller-supplied output matrix's shape didn't
	// match the selection.
	InvalidShape
	// BoolArrayVectorWrongLength means a boolean mask's length didn't equal
	// the axis length it was selecting against.
	BoolArrayVectorWrongLength
	// StartGreaterThanEnd means a range's start exceeded its end.
	StartGreaterThanEnd
	// StepZero means a strided slice had a zero step.
	StepZero
	// StartGreaterThanCount means a range/slice start exceeded the axis
	// length.
	StartGreaterThanCount
	// EndGreaterThanCount means a range/slice end exceeded the axis length.
	EndGreaterThanCount
	// NewAxis means a slice descriptor requested an unsupported new-axis
	// construct.
	NewAxis
	// MetadataFieldCount means a sidecar line did not contain exactly six
	// fields.
	MetadataFieldCount
	// InconsistentCount means two sources disagreed about a row or column
	// count.
	InconsistentCount
	// CannotUseSkippedMetadata means a metadata field marked Skipped was
	// accessed.
	CannotUseSkippedMetadata
	// PanickedThread means a worker goroutine panicked during parallel
	// decode or encode.
	PanickedThread
	// InvalidNumThreads means a num-threads resolution env var was set but
	// could not be parsed as a positive integer.
	InvalidNumThreads
)

var kindNames = map[ErrKind]string{
	Other:                      "other",
	IllFormed:                  "ill-formed",
	BadMode:                    "bad-mode",
	BadValue:                   "bad-value",
	IidIndexTooBig:             "iid-index-too-big",
	SidIndexTooBig:             "sid-index-too-big",
	IndexesTooBigForFiles:      "indexes-too-big-for-files",
	InvalidShape:               "invalid-shape",
	BoolArrayVectorWrongLength: "bool-array-vector-wrong-length",
	StartGreaterThanEnd:        "start-greater-than-end",
	StepZero:                   "step-zero",
	StartGreaterThanCount:      "start-greater-than-count",
	EndGreaterThanCount:        "end-greater-than-count",
	NewAxis:                    "new-axis",
	MetadataFieldCount:         "metadata-field-count",
	InconsistentCount:          "inconsistent-count",
	CannotUseSkippedMetadata:   "cannot-use-skipped-metadata",
	PanickedThread:             "panicked-thread",
	InvalidNumThreads:          "invalid-num-threads",
}

func (k ErrKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is the concrete error type returned by every operation in this
// package that fails for a reason spec'd in the format's error taxonomy.
type Error struct {
	Kind ErrKind
	msg  string
	err  error // optional wrapped cause, already stack-traced by pkg/errors
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.err }

// newErr constructs an *Error of the given kind with a formatted message.
func newErr(kind ErrKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// wrapErr constructs an *Error of the given kind wrapping an existing error,
// stack-tracing it via pkg/errors' WithStack.
func wrapErr(kind ErrKind, err error, format string, args ...interface{}) error {
	if err == nil {
		return newErr(kind, format, args...)
	}
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// KindOf returns the ErrKind of err if it (or something it wraps) is an
// *Error, and Other otherwise.
func KindOf(err error) ErrKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}
