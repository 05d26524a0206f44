// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"github.com/biogo/store/llrb"
)

// bpKey is a (base-pair position, column index) pair ordered by position,
// the llrb.Comparable key type for PositionIndex's per-chromosome trees, the
// same shape as bampair's shard key.
type bpKey struct {
	bp  int
	col int
}

func (k bpKey) Compare(c llrb.Comparable) int {
	k2 := c.(bpKey)
	return k.bp - k2.bp
}

// PositionIndex is a per-chromosome sorted index of variant base-pair
// positions, letting callers look up the column for an exact position, or
// the nearest variant at or before a position, without a linear scan of
// the .bim sidecar. It is a SPEC_FULL enrichment over spec.md's core
// Metadata component, not itself part of any read or write path.
type PositionIndex struct {
	byChrom map[string]*llrb.Tree
}

// BuildPositionIndex indexes m's Chromosome/BpPosition fields, which
// must already be present (e.g. via ParseBim or FillDefaults).
func BuildPositionIndex(m *Metadata) (*PositionIndex, error) {
	chrom, err := m.Chromosome.Values()
	if err != nil {
		return nil, err
	}
	bp, err := m.BpPosition.Values()
	if err != nil {
		return nil, err
	}
	if len(chrom) != len(bp) {
		return nil, newErr(InconsistentCount, "chromosome has %d entries, bp_position has %d", len(chrom), len(bp))
	}
	idx := &PositionIndex{byChrom: make(map[string]*llrb.Tree)}
	for col, c := range chrom {
		tree := idx.byChrom[c]
		if tree == nil {
			tree = &llrb.Tree{}
			idx.byChrom[c] = tree
		}
		tree.Insert(bpKey{bp: bp[col], col: col})
	}
	return idx, nil
}

// Lookup returns the column index of the variant at exactly (chromosome,
// bp), and false if none exists.
func (p *PositionIndex) Lookup(chromosome string, bp int) (int, bool) {
	tree := p.byChrom[chromosome]
	if tree == nil {
		return 0, false
	}
	c := tree.Get(bpKey{bp: bp})
	if c == nil {
		return 0, false
	}
	return c.(bpKey).col, true
}

// Floor returns the column index of the variant at the largest base-pair
// position <= bp on the given chromosome, and false if none exists.
func (p *PositionIndex) Floor(chromosome string, bp int) (int, bool) {
	tree := p.byChrom[chromosome]
	if tree == nil {
		return 0, false
	}
	c := tree.Floor(bpKey{bp: bp})
	if c == nil {
		return 0, false
	}
	return c.(bpKey).col, true
}

// Chromosomes returns the set of chromosome codes present in the index.
func (p *PositionIndex) Chromosomes() []string {
	out := make([]string, 0, len(p.byChrom))
	for c := range p.byChrom {
		out = append(out, c)
	}
	return out
}
