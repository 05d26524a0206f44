// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"os"
	"runtime"
	"strconv"

	"v.io/x/lib/vlog"
)

// resolveNumThreads picks the parallelism for traverse.Each, following the
// same precedence bed-reader's Rust implementation uses: an explicit,
// non-nil option wins; otherwise BED_READER_NUM_THREADS is checked, then
// NUM_THREADS; otherwise runtime.NumCPU() (the pack's usual "0 means all
// cores" convention, e.g. bio-pamtool's checksum command). A set-but-
// unparsable or non-positive env var is a resolution failure, reported to
// the caller rather than silently papered over with NumCPU().
func resolveNumThreads(explicit *int) (int, error) {
	if explicit != nil {
		if *explicit > 0 {
			return *explicit, nil
		}
		return runtime.NumCPU(), nil
	}
	for _, name := range []string{"BED_READER_NUM_THREADS", "NUM_THREADS"} {
		if v, ok := os.LookupEnv(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, wrapErr(InvalidNumThreads, err, "parsing %s=%q", name, v)
			}
			if n <= 0 {
				return 0, newErr(InvalidNumThreads, "%s=%d must be positive", name, n)
			}
			vlog.VI(1).Infof("resolveNumThreads: using %s=%d", name, n)
			return n, nil
		}
	}
	return runtime.NumCPU(), nil
}
