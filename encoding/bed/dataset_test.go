// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
}

func TestOpenDerivesSidecarPaths(t *testing.T) {
	d := Open("/data/cohort.bed")
	assert.Equal(t, "/data/cohort.bed", d.BedPath())
	assert.Equal(t, "/data/cohort.fam", d.FamPath())
	assert.Equal(t, "/data/cohort.bim", d.BimPath())
}

func TestOpenWithSidecars(t *testing.T) {
	d := OpenWithSidecars("/data/a.bed", "/other/b.fam", "/other/c.bim")
	assert.Equal(t, "/other/b.fam", d.FamPath())
	assert.Equal(t, "/other/c.bim", d.BimPath())
}

func TestDatasetCountsAndMetadataAreLazyAndCached(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	writeFile(t, filepath.Join(dir, "x.fam"), famFixture)
	writeFile(t, filepath.Join(dir, "x.bim"), bimFixture)

	d := Open(filepath.Join(dir, "x.bed"))
	ctx := context.Background()

	n, err := d.NRow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	m, err := d.Metadata(ctx)
	require.NoError(t, err)
	sid, err := m.Sid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"rs1", "rs2"}, sid)

	// Second call must hit the cache, not re-parse.
	m2, err := d.Metadata(ctx)
	require.NoError(t, err)
	assert.Same(t, m, m2)
}
