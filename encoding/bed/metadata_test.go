// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const famFixture = "fam1 ind1 0 0 1 -9\n" + "fam1 ind2 0 0 2 1.5\n"
const bimFixture = "1\trs1\t0\t100\tA\tG\n" + "1\trs2\t0\t200\tC\tT\n"

func TestParseFam(t *testing.T) {
	m := &Metadata{}
	n, err := m.ParseFam(strings.NewReader(famFixture))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	iid, err := m.Iid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"ind1", "ind2"}, iid)

	sex, err := m.Sex.Values()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sex)

	pheno, err := m.Pheno.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"-9", "1.5"}, pheno)
}

func TestParseFamNonNumericPheno(t *testing.T) {
	m := &Metadata{}
	_, err := m.ParseFam(strings.NewReader("fam1 ind1 0 0 1 control\n"))
	require.NoError(t, err)
	pheno, err := m.Pheno.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"control"}, pheno)
}

func TestParseFamWrongFieldCount(t *testing.T) {
	m := &Metadata{}
	_, err := m.ParseFam(strings.NewReader("fam1 ind1 0 0 1\n"))
	require.Error(t, err)
	assert.Equal(t, MetadataFieldCount, KindOf(err))
}

func TestParseBim(t *testing.T) {
	m := &Metadata{}
	n, err := m.ParseBim(strings.NewReader(bimFixture))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sid, err := m.Sid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"rs1", "rs2"}, sid)

	bp, err := m.BpPosition.Values()
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, bp)
}

func TestFillDefaults(t *testing.T) {
	m := &Metadata{}
	m.FillDefaults(3, 3)
	fid, err := m.Fid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "0"}, fid)

	iid, err := m.Iid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"iid1", "iid2", "iid3"}, iid)

	pheno, err := m.Pheno.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "0"}, pheno)

	bp, err := m.BpPosition.Values()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, bp)

	sid, err := m.Sid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"sid1", "sid2", "sid3"}, sid)
}

func TestFillDefaultsLeavesPresentAlone(t *testing.T) {
	m := &Metadata{}
	m.Iid.Set([]string{"custom"})
	m.FillDefaults(1, 1)
	iid, err := m.Iid.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"custom"}, iid)
}

func TestSkippedFieldErrors(t *testing.T) {
	m := &Metadata{}
	m.Pheno.Skip()
	_, err := m.Pheno.Values()
	require.Error(t, err)
	assert.Equal(t, CannotUseSkippedMetadata, KindOf(err))
}

func TestCheckCountsInconsistent(t *testing.T) {
	m := &Metadata{}
	m.Iid.Set([]string{"a", "b", "c"})
	err := m.CheckCounts(2, 0)
	require.Error(t, err)
	assert.Equal(t, InconsistentCount, KindOf(err))
}

func TestFamRoundTrip(t *testing.T) {
	m := &Metadata{}
	_, err := m.ParseFam(strings.NewReader(famFixture))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, m.WriteFam(&buf, 2))

	m2 := &Metadata{}
	n, err := m2.ParseFam(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	iid, _ := m2.Iid.Values()
	assert.Equal(t, []string{"ind1", "ind2"}, iid)
}
