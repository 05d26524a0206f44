// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/plinkio/encoding/bed"
	"v.io/x/lib/cmdline"
)

type viewFlags struct {
	rows *string
	cols *string
}

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Dump a .bed file's metadata and genotype matrix",
		ArgsName: "path.bed",
	}
	flags := viewFlags{
		rows: cmd.Flags.String("rows", "", "Row range 'start-end' (0-based, half-open). Default all rows."),
		cols: cmd.Flags.String("cols", "", "Column range 'start-end' (0-based, half-open). Default all columns."),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("view takes one pathname argument, but got %v", argv)
		}
		return view(argv[0], flags)
	})
	return cmd
}

// parseRangeFlag parses a "start-end" flag value into an Index, or
// bed.AllIndex() if the flag is empty.
func parseRangeFlag(flag string) (bed.Index, error) {
	if flag == "" {
		return bed.AllIndex(), nil
	}
	parts := strings.SplitN(flag, "-", 2)
	if len(parts) != 2 {
		return bed.Index{}, fmt.Errorf("bad range %q, want 'start-end'", flag)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return bed.Index{}, fmt.Errorf("bad range %q: %v", flag, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return bed.Index{}, fmt.Errorf("bad range %q: %v", flag, err)
	}
	return bed.RangeIndex(bed.Int(start), bed.Int(end)), nil
}

func view(path string, flags viewFlags) error {
	ctx := context.Background()
	d := bed.Open(path)
	log.Printf("view: opening %s (fam=%s, bim=%s)", d.BedPath(), d.FamPath(), d.BimPath())

	nRow, err := d.NRow(ctx)
	if err != nil {
		return err
	}
	nCol, err := d.NCol(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d individuals x %d variants\n", path, nRow, nCol)

	metadata, err := d.Metadata(ctx)
	if err != nil {
		return err
	}

	rowIdx, err := parseRangeFlag(*flags.rows)
	if err != nil {
		return err
	}
	colIdx, err := parseRangeFlag(*flags.cols)
	if err != nil {
		return err
	}

	opts := bed.NewReadOptions[int8]().WithIid(rowIdx).WithSid(colIdx).WithOutputOrder(bed.RowMajor)
	m, err := bed.Read(ctx, d, opts)
	if err != nil {
		return err
	}

	rows, err := rowIdx.ToPositions(nRow, bed.IidAxis)
	if err != nil {
		return err
	}
	cols, err := colIdx.ToPositions(nCol, bed.SidAxis)
	if err != nil {
		return err
	}

	iid, err := metadata.Iid.Values()
	if err != nil {
		return err
	}
	sid, err := metadata.Sid.Values()
	if err != nil {
		return err
	}

	fmt.Print("iid")
	for _, c := range cols {
		fmt.Printf("\t%s", sidOrDefault(sid, c))
	}
	fmt.Println()
	for outRow, onDiskRow := range rows {
		fmt.Print(iidOrDefault(iid, onDiskRow))
		for outCol := range cols {
			fmt.Printf("\t%s", formatCall(m.At(outRow, outCol)))
		}
		fmt.Println()
	}
	return nil
}

func iidOrDefault(iid []string, row int) string {
	if row < len(iid) {
		return iid[row]
	}
	return fmt.Sprintf("iid%d", row)
}

func sidOrDefault(sid []string, col int) string {
	if col < len(sid) {
		return sid[col]
	}
	return fmt.Sprintf("sid%d", col)
}

func formatCall(v int8) string {
	if v == -127 {
		return "NA"
	}
	return strconv.Itoa(int(v))
}
