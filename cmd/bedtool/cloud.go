// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
)

// init registers the "s3://" scheme with the backend-agnostic file
// package, the same way bamprovider's tests wire it in, so the .fam/.bim
// sidecars that encoding/bed opens through the file package may live at
// s3:// paths, without encoding/bed itself importing AWS. The genotype
// matrix read (view, checksum) opens the .bed path with os.Open, so that
// path must be local.
func init() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}
