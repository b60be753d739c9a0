// elAlign: concurrent alignment chunking for assembly polishing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elalign/blob/master/LICENSE.txt>.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exascience/elalign/sam"
)

// CheckBinaries verifies that the selected mapper and the sort
// program can be found.
func CheckBinaries(tools *Tools, mapper string) error {
	name, err := tools.binary(mapper)
	if err != nil {
		return err
	}
	for _, bin := range []string{name, tools.Sort} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %v", ErrBinaryNotFound, bin)
		}
	}
	return nil
}

// MakeAlignment maps the reads against the reference with the
// configured mapper, and sorts the resulting SAM file opts.Output
// by contig.
func MakeAlignment(ctx context.Context, tools *Tools, opts MapperOptions, workDir string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Running mapper",
		zap.String("mapper", opts.Tool),
		zap.String("reference", opts.Reference),
		zap.String("reads", opts.Reads))
	if err := RunMapper(ctx, tools, opts, logger); err != nil {
		return err
	}
	logger.Debug("Sorting alignment file", zap.String("path", opts.Output))
	return SortByTarget(ctx, tools, opts.Output, workDir, logger)
}

// ReadOptions configures ReadAlignments.
type ReadOptions struct {
	// Workers is the number of concurrent chunk readers.
	// 0 means runtime.GOMAXPROCS(0).
	Workers            int
	MinAlignmentLength int
	StrictSortCheck    bool
	ShiftGaps          bool
	Logger             *zap.Logger
}

func (opts ReadOptions) chunkOptions() []sam.ChunkOption {
	options := []sam.ChunkOption{sam.WithMinAlignmentLength(opts.MinAlignmentLength)}
	if opts.StrictSortCheck {
		options = append(options, sam.WithStrictSortCheck())
	}
	if opts.ShiftGaps {
		options = append(options, sam.WithShiftGaps())
	}
	return options
}

/*
ReadAlignments reads the sorted SAM file at path with opts.Workers
concurrent chunk readers, and calls handle once for each contig in
the file. handle is called from multiple goroutines at the same time.

The first error returned by a reader or by handle is returned; the
remaining readers stop before their next chunk.
*/
func ReadAlignments(ctx context.Context, path string, ref sam.ReferenceLookup, opts ReadOptions, handle func(*sam.Chunk) error) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	src := sam.NewChunkSource(path, ref, opts.chunkOptions()...)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			reader, err := src.NewReader()
			if err != nil {
				return err
			}
			defer func() {
				_ = reader.Close()
			}()
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				chunk, err := reader.NextChunk()
				if err == io.EOF {
					return nil
				} else if err != nil {
					return err
				}
				logger.Debug("Read chunk",
					zap.Int("worker", w),
					zap.String("contig", chunk.Contig),
					zap.Int("alignments", len(chunk.Alignments)))
				if err := handle(chunk); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}

// CollectAlignments is ReadAlignments with a handler that gathers
// the alignments of each contig in a map.
func CollectAlignments(ctx context.Context, path string, ref sam.ReferenceLookup, opts ReadOptions) (map[string][]*sam.Alignment, error) {
	var mutex sync.Mutex
	result := make(map[string][]*sam.Alignment)
	err := ReadAlignments(ctx, path, ref, opts, func(chunk *sam.Chunk) error {
		mutex.Lock()
		defer mutex.Unlock()
		result[chunk.Contig] = chunk.Alignments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
