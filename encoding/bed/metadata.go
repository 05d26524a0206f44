// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FieldState is the three-way state a Metadata field can be in: not yet
// looked at, explicitly excluded from loading, or loaded/assigned.
type FieldState int

const (
	// FieldUnknown means the field has neither been read from a sidecar nor
	// explicitly set nor skipped. FillDefaults will populate it.
	FieldUnknown FieldState = iota
	// FieldSkipped means the caller excluded this field: Values returns
	// CannotUseSkippedMetadata, FillDefaults leaves it alone and
	// CheckCounts does not check it. ParseFam and ParseBim do not honor it:
	// they set every field of their sidecar to FieldPresent, skipped or not.
	FieldSkipped
	// FieldPresent means the field holds real values, either parsed from a
	// sidecar or assigned directly.
	FieldPresent
)

// Field is one of Metadata's twelve lazily-populated columns.
type Field[T any] struct {
	state  FieldState
	values []T
}

// Skip marks the field as intentionally excluded.
func (f *Field[T]) Skip() { f.state = FieldSkipped; f.values = nil }

// Set assigns the field's values directly, bypassing sidecar parsing.
func (f *Field[T]) Set(values []T) {
	f.state = FieldPresent
	f.values = values
}

// Values returns the field's values, or CannotUseSkippedMetadata if the
// field was skipped. A FieldUnknown field returns a nil slice and no error;
// callers that need defaulting should call Metadata.FillDefaults first.
func (f *Field[T]) Values() ([]T, error) {
	if f.state == FieldSkipped {
		return nil, newErr(CannotUseSkippedMetadata, "metadata field was skipped")
	}
	return f.values, nil
}

// State reports the field's current FieldState.
func (f *Field[T]) State() FieldState { return f.state }

// Metadata is the twelve-field bundle of per-individual (.fam) and
// per-variant (.bim) sidecar data, matching spec.md's C3 Metadata
// component. Each field independently tracks whether it has been loaded,
// explicitly skipped, or is still unknown.
type Metadata struct {
	// Per-individual fields, sourced from the .fam sidecar.
	Fid    Field[string]  // family ID
	Iid    Field[string]  // individual ID
	Father Field[string]  // father's individual ID, "0" if unknown
	Mother Field[string]  // mother's individual ID, "0" if unknown
	Sex    Field[int]    // 1=male, 2=female, 0=unknown
	Pheno  Field[string] // phenotype value, "0" if missing; not numerically validated

	// Per-variant fields, sourced from the .bim sidecar.
	Chromosome Field[string]  // chromosome code
	Sid        Field[string]  // variant/SNP ID
	CmPosition Field[float64] // centimorgan position
	BpPosition Field[int]     // base-pair position
	Allele1    Field[string]  // allele 1 (usually minor)
	Allele2    Field[string]  // allele 2 (usually major/reference)
}

// tokenizeLine splits a sidecar line on runs of whitespace, the same way
// interval's bedunion tokenizer treats BED-family text columns.
func tokenizeLine(line string) []string {
	return strings.Fields(line)
}

const sidecarFieldCount = 6

func parseSidecarLines(r io.Reader, kind string) ([][sidecarFieldCount]string, error) {
	var rows [][sidecarFieldCount]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := tokenizeLine(line)
		if len(tokens) != sidecarFieldCount {
			return nil, newErr(MetadataFieldCount, "%s line %d: got %d fields, want %d", kind, lineNo, len(tokens), sidecarFieldCount)
		}
		var row [sidecarFieldCount]string
		copy(row[:], tokens)
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapErr(Other, err, "reading %s sidecar", kind)
	}
	return rows, nil
}

// ParseFam reads a .fam sidecar (fid iid father mother sex pheno, one line
// per individual) into m's per-individual fields and returns the
// individual count.
func (m *Metadata) ParseFam(r io.Reader) (int, error) {
	rows, err := parseSidecarLines(r, "fam")
	if err != nil {
		return 0, err
	}
	n := len(rows)
	fid := make([]string, n)
	iid := make([]string, n)
	father := make([]string, n)
	mother := make([]string, n)
	sex := make([]int, n)
	pheno := make([]string, n)
	for i, row := range rows {
		fid[i], iid[i], father[i], mother[i] = row[0], row[1], row[2], row[3]
		sexVal, err := strconv.Atoi(row[4])
		if err != nil {
			return 0, wrapErr(IllFormed, err, "fam line %d: bad sex field %q", i+1, row[4])
		}
		sex[i] = sexVal
		pheno[i] = row[5]
	}
	m.Fid.Set(fid)
	m.Iid.Set(iid)
	m.Father.Set(father)
	m.Mother.Set(mother)
	m.Sex.Set(sex)
	m.Pheno.Set(pheno)
	return n, nil
}

// ParseBim reads a .bim sidecar (chromosome sid cm_position bp_position
// allele_1 allele_2, one line per variant) into m's per-variant fields and
// returns the variant count.
func (m *Metadata) ParseBim(r io.Reader) (int, error) {
	rows, err := parseSidecarLines(r, "bim")
	if err != nil {
		return 0, err
	}
	n := len(rows)
	chrom := make([]string, n)
	sid := make([]string, n)
	cm := make([]float64, n)
	bp := make([]int, n)
	a1 := make([]string, n)
	a2 := make([]string, n)
	for i, row := range rows {
		chrom[i], sid[i] = row[0], row[1]
		cmVal, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return 0, wrapErr(IllFormed, err, "bim line %d: bad cm_position field %q", i+1, row[2])
		}
		cm[i] = cmVal
		bpVal, err := strconv.Atoi(row[3])
		if err != nil {
			return 0, wrapErr(IllFormed, err, "bim line %d: bad bp_position field %q", i+1, row[3])
		}
		bp[i] = bpVal
		a1[i], a2[i] = row[4], row[5]
	}
	m.Chromosome.Set(chrom)
	m.Sid.Set(sid)
	m.CmPosition.Set(cm)
	m.BpPosition.Set(bp)
	m.Allele1.Set(a1)
	m.Allele2.Set(a2)
	return n, nil
}

// WriteFam emits m's per-individual fields as a .fam sidecar. Callers
// should call FillDefaults first so that no field is still FieldUnknown.
func (m *Metadata) WriteFam(w io.Writer, n int) error {
	fid, err := m.Fid.Values()
	if err != nil {
		return err
	}
	iid, err := m.Iid.Values()
	if err != nil {
		return err
	}
	father, err := m.Father.Values()
	if err != nil {
		return err
	}
	mother, err := m.Mother.Values()
	if err != nil {
		return err
	}
	sex, err := m.Sex.Values()
	if err != nil {
		return err
	}
	pheno, err := m.Pheno.Values()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			fid[i], iid[i], father[i], mother[i], sex[i], pheno[i]); err != nil {
			return wrapErr(Other, err, "writing fam line %d", i+1)
		}
	}
	return bw.Flush()
}

// WriteBim emits m's per-variant fields as a .bim sidecar. Callers should
// call FillDefaults first so that no field is still FieldUnknown.
func (m *Metadata) WriteBim(w io.Writer, n int) error {
	chrom, err := m.Chromosome.Values()
	if err != nil {
		return err
	}
	sid, err := m.Sid.Values()
	if err != nil {
		return err
	}
	cm, err := m.CmPosition.Values()
	if err != nil {
		return err
	}
	bp, err := m.BpPosition.Values()
	if err != nil {
		return err
	}
	a1, err := m.Allele1.Values()
	if err != nil {
		return err
	}
	a2, err := m.Allele2.Values()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			chrom[i], sid[i], formatFloat(cm[i]), bp[i], a1[i], a2[i]); err != nil {
			return wrapErr(Other, err, "writing bim line %d", i+1)
		}
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FillDefaults populates every field still in FieldUnknown state with its
// PLINK default: nRow sizes the per-individual fields, nCol the
// per-variant fields. Skipped and already-present fields are left
// untouched.
func (m *Metadata) FillDefaults(nRow, nCol int) {
	if m.Fid.state == FieldUnknown {
		v := make([]string, nRow)
		for i := range v {
			v[i] = "0"
		}
		m.Fid.Set(v)
	}
	if m.Iid.state == FieldUnknown {
		v := make([]string, nRow)
		for i := range v {
			v[i] = "iid" + strconv.Itoa(i+1)
		}
		m.Iid.Set(v)
	}
	if m.Father.state == FieldUnknown {
		v := make([]string, nRow)
		for i := range v {
			v[i] = "0"
		}
		m.Father.Set(v)
	}
	if m.Mother.state == FieldUnknown {
		v := make([]string, nRow)
		for i := range v {
			v[i] = "0"
		}
		m.Mother.Set(v)
	}
	if m.Sex.state == FieldUnknown {
		m.Sex.Set(make([]int, nRow))
	}
	if m.Pheno.state == FieldUnknown {
		v := make([]string, nRow)
		for i := range v {
			v[i] = "0"
		}
		m.Pheno.Set(v)
	}
	if m.Chromosome.state == FieldUnknown {
		v := make([]string, nCol)
		for i := range v {
			v[i] = "0"
		}
		m.Chromosome.Set(v)
	}
	if m.Sid.state == FieldUnknown {
		v := make([]string, nCol)
		for i := range v {
			v[i] = "sid" + strconv.Itoa(i+1)
		}
		m.Sid.Set(v)
	}
	if m.CmPosition.state == FieldUnknown {
		m.CmPosition.Set(make([]float64, nCol))
	}
	if m.BpPosition.state == FieldUnknown {
		m.BpPosition.Set(make([]int, nCol))
	}
	if m.Allele1.state == FieldUnknown {
		v := make([]string, nCol)
		for i := range v {
			v[i] = "A1"
		}
		m.Allele1.Set(v)
	}
	if m.Allele2.state == FieldUnknown {
		v := make([]string, nCol)
		for i := range v {
			v[i] = "A2"
		}
		m.Allele2.Set(v)
	}
}

// checkLen reports InconsistentCount if a present field's length disagrees
// with want.
func checkLen(name string, state FieldState, got, want int) error {
	if state == FieldPresent && got != want {
		return newErr(InconsistentCount, "metadata field %s has %d entries, want %d", name, got, want)
	}
	return nil
}

// CheckCounts verifies that every present field of m agrees with nRow (for
// per-individual fields) and nCol (for per-variant fields).
func (m *Metadata) CheckCounts(nRow, nCol int) error {
	type check struct {
		name  string
		state FieldState
		n     int
		want  int
	}
	checks := []check{
		{"fid", m.Fid.state, len(m.Fid.values), nRow},
		{"iid", m.Iid.state, len(m.Iid.values), nRow},
		{"father", m.Father.state, len(m.Father.values), nRow},
		{"mother", m.Mother.state, len(m.Mother.values), nRow},
		{"sex", m.Sex.state, len(m.Sex.values), nRow},
		{"pheno", m.Pheno.state, len(m.Pheno.values), nRow},
		{"chromosome", m.Chromosome.state, len(m.Chromosome.values), nCol},
		{"sid", m.Sid.state, len(m.Sid.values), nCol},
		{"cm_position", m.CmPosition.state, len(m.CmPosition.values), nCol},
		{"bp_position", m.BpPosition.state, len(m.BpPosition.values), nCol},
		{"allele_1", m.Allele1.state, len(m.Allele1.values), nCol},
		{"allele_2", m.Allele2.state, len(m.Allele2.values), nCol},
	}
	for _, c := range checks {
		if err := checkLen(c.name, c.state, c.n, c.want); err != nil {
			return err
		}
	}
	return nil
}
