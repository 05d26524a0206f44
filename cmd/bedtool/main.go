// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command bedtool inspects and checksums PLINK 1 .bed/.fam/.bim genotype
// file trios, the way bio-pamtool inspects and checksums BAM/PAM files.
package main

import (
	"log"

	"v.io/x/lib/cmdline"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:  "bedtool",
		Short: "Tools for working with PLINK 1 .bed/.fam/.bim files",
		Children: []*cmdline.Command{
			newCmdView(),
			newCmdChecksum(),
			newCmdFindVariant(),
		},
	})
}
