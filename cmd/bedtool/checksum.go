// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"runtime"

	"blainsmith.com/go/seahash"
	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errorreporter"
	"github.com/grailbio/base/log"
	"github.com/grailbio/plinkio/encoding/bed"
	"github.com/minio/highwayhash"
	"v.io/x/lib/cmdline"
)

// highwayKey is the all-zero 32-byte key highwayhash requires; bedtool has
// no notion of a keyed/authenticated checksum, so a fixed key is fine.
var highwayKey = make([]byte, highwayhash.Size)

type checksumOpts struct {
	algo string
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "checksum",
		Short:    "Compute a per-column checksum of a .bed file's genotype matrix",
		ArgsName: "path.bed",
	}
	opts := checksumOpts{}
	cmd.Flags.StringVar(&opts.algo, "algo", "seahash", "Hash algorithm: seahash, farm, or highway")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes one pathname argument, but got %v", argv)
		}
		return checksum(argv[0], opts)
	})
	return cmd
}

// columnChecksum is the checksum of one variant's column of genotype
// calls, the per-reference analogue of bio-pamtool checksum's refChecksum.
type columnChecksum struct {
	Sid    string
	NCalls int64
	Sum    uint64
}

func checksumColumn(algo string, sid string, calls []int8) (columnChecksum, error) {
	buf := make([]byte, len(calls))
	for i, v := range calls {
		buf[i] = byte(v)
	}
	var sum uint64
	switch algo {
	case "seahash", "":
		h := seahash.New()
		if _, err := h.Write(buf); err != nil {
			return columnChecksum{}, err
		}
		sum = h.Sum64()
	case "farm":
		sum = farm.Hash64(buf)
	case "highway":
		digest := highwayhash.Sum(buf, highwayKey)
		sum = binary.LittleEndian.Uint64(digest[:8])
	default:
		return columnChecksum{}, fmt.Errorf("unknown checksum algorithm %q", algo)
	}
	return columnChecksum{Sid: sid, NCalls: int64(len(calls)), Sum: sum}, nil
}

func checksum(path string, opts checksumOpts) error {
	ctx := context.Background()
	d := bed.Open(path)
	m, err := bed.Read(ctx, d, bed.NewReadOptions[int8]())
	if err != nil {
		return err
	}
	metadata, err := d.Metadata(ctx)
	if err != nil {
		return err
	}
	sid, err := metadata.Sid.Values()
	if err != nil {
		return err
	}

	results := make([]columnChecksum, m.NCol)
	numThreads := runtime.NumCPU()
	if numThreads > m.NCol {
		numThreads = m.NCol
	}
	if numThreads < 1 {
		numThreads = 1
	}

	var errs errorreporter.T
	jobCh := make(chan int, m.NCol)
	for c := 0; c < m.NCol; c++ {
		jobCh <- c
	}
	close(jobCh)
	doneCh := make(chan struct{}, numThreads)
	for i := 0; i < numThreads; i++ {
		go func() {
			for c := range jobCh {
				csum, err := checksumColumn(opts.algo, sidOrDefault(sid, c), m.Column(c))
				if err != nil {
					errs.Set(err)
					continue
				}
				results[c] = csum
			}
			doneCh <- struct{}{}
		}()
	}
	for i := 0; i < numThreads; i++ {
		<-doneCh
	}
	if errs.Err() != nil {
		return errs.Err()
	}
	log.Printf("checksum: hashed %d columns of %s with %s across %d workers", m.NCol, path, opts.algo, numThreads)

	js, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(js))
	return nil
}
