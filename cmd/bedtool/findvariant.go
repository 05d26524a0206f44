// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/plinkio/encoding/bed"
	"v.io/x/lib/cmdline"
)

type findVariantFlags struct {
	top *int
}

func newCmdFindVariant() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "find-variant",
		Short:    "Fuzzy-match a variant ID against a .bed file's .bim sidecar",
		ArgsName: "path.bed query",
	}
	flags := findVariantFlags{
		top: cmd.Flags.Int("top", 5, "Number of closest matches to print"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("find-variant takes path.bed and a query sid, but got %v", argv)
		}
		return findVariant(argv[0], argv[1], *flags.top)
	})
	return cmd
}

type variantMatch struct {
	Sid        string
	Similarity float64
}

func findVariant(path, query string, top int) error {
	ctx := context.Background()
	d := bed.Open(path)
	metadata, err := d.Metadata(ctx)
	if err != nil {
		return err
	}
	sid, err := metadata.Sid.Values()
	if err != nil {
		return err
	}

	matches := make([]variantMatch, len(sid))
	for i, s := range sid {
		matches[i] = variantMatch{Sid: s, Similarity: matchr.JaroWinkler(query, s, true)}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Similarity > matches[j].Similarity })
	if top > len(matches) {
		top = len(matches)
	}
	for _, m := range matches[:top] {
		fmt.Printf("%s\t%.4f\n", m.Sid, m.Similarity)
	}
	return nil
}
