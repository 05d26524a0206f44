// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNumThreadsExplicit(t *testing.T) {
	n := 7
	got, err := resolveNumThreads(&n)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestResolveNumThreadsEnvVar(t *testing.T) {
	t.Setenv("BED_READER_NUM_THREADS", "3")
	got, err := resolveNumThreads(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestResolveNumThreadsBadEnvVar(t *testing.T) {
	t.Setenv("BED_READER_NUM_THREADS", "not-a-number")
	_, err := resolveNumThreads(nil)
	require.Error(t, err)
	assert.Equal(t, InvalidNumThreads, KindOf(err))
}

func TestResolveNumThreadsNonPositiveEnvVar(t *testing.T) {
	t.Setenv("NUM_THREADS", "0")
	_, err := resolveNumThreads(nil)
	require.Error(t, err)
	assert.Equal(t, InvalidNumThreads, KindOf(err))
}
