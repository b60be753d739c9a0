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

package cmd

import (
	"context"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/elalign/fasta"
	"github.com/exascience/elalign/pipeline"
	"github.com/exascience/elalign/sam"
)

// readFlags are shared by the commands that read sorted SAM files.
type readFlags struct {
	reference          string
	output             string
	threads            int
	minAlignmentLength int
	shiftGaps          bool
	strictSortCheck    bool
	timed              bool
}

func (f *readFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.reference, "reference", "", "FASTA file with the contigs the reads were mapped against")
	flags.StringVar(&f.output, "output", "/dev/stdout", "alignment output file")
	flags.IntVar(&f.threads, "nr-of-threads", runtime.GOMAXPROCS(0), "number of concurrent chunk readers")
	flags.IntVar(&f.minAlignmentLength, "min-aln-length", 0, "drop alignments covering fewer read bases")
	flags.BoolVar(&f.shiftGaps, "shift-gaps", false, "canonicalize the placement of query gaps")
	flags.BoolVar(&f.strictSortCheck, "strict-sort-check", false, "detect unsorted input across all readers")
	flags.BoolVar(&f.timed, "timed", false, "log elapsed time of each phase")
	_ = cmd.MarkFlagRequired("reference")
}

func (f *readFlags) readOptions() pipeline.ReadOptions {
	return pipeline.ReadOptions{
		Workers:            f.threads,
		MinAlignmentLength: f.minAlignmentLength,
		StrictSortCheck:    f.strictSortCheck,
		ShiftGaps:          f.shiftGaps,
		Logger:             logger,
	}
}

// readSorted reads a sorted SAM file into an alignment output file.
func (f *readFlags) readSorted(ctx context.Context, samFile string) error {
	var ref *fasta.Reference
	if err := timedRun(f.timed, "Loading reference.", func() (err error) {
		ref, err = fasta.LoadReference(f.reference)
		return err
	}); err != nil {
		return err
	}
	logger.Info("Loaded reference", zap.String("path", f.reference), zap.Int("contigs", ref.Len()))

	out, err := sam.CreateAlignmentFile(f.output)
	if err != nil {
		return err
	}
	var (
		countMutex          sync.Mutex
		alignments, contigs int
	)
	err = timedRun(f.timed, "Reading alignments.", func() error {
		return pipeline.ReadAlignments(ctx, samFile, ref, f.readOptions(), func(chunk *sam.Chunk) error {
			if err := out.WriteChunk(chunk); err != nil {
				return err
			}
			countMutex.Lock()
			contigs++
			alignments += len(chunk.Alignments)
			countMutex.Unlock()
			return nil
		})
	})
	if nerr := out.Close(); err == nil {
		err = nerr
	}
	if err != nil {
		return err
	}
	logger.Info("Wrote alignments",
		zap.String("path", f.output),
		zap.Int("contigs", contigs),
		zap.Int("alignments", alignments))
	return nil
}

var chunkFlags readFlags

var chunkCmd = &cobra.Command{
	Use:   "chunk sam-file",
	Short: "Decode a SAM file sorted by contig into per-contig alignments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkExist("sam-file", args[0]); err != nil {
			return err
		}
		if err := checkExist("--reference", chunkFlags.reference); err != nil {
			return err
		}
		if err := checkCreate("--output", chunkFlags.output); err != nil {
			return err
		}
		return chunkFlags.readSorted(cmd.Context(), args[0])
	},
}

func init() {
	chunkFlags.register(chunkCmd)
}
