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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/exascience/elalign/pipeline"
)

var alignFlags struct {
	readFlags
	reads     string
	samFile   string
	workDir   string
	platform  string
	mapper    string
	toolsFile string
}

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Map reads against contigs, sort by contig, and decode per-contig alignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &alignFlags
		if err := checkExist("--reference", f.reference); err != nil {
			return err
		}
		if err := checkExist("--reads", f.reads); err != nil {
			return err
		}
		if f.samFile == "" {
			f.samFile = filepath.Join(f.workDir, "alignment.sam")
		}
		if err := checkCreate("--sam", f.samFile); err != nil {
			return err
		}
		if err := checkCreate("--output", f.output); err != nil {
			return err
		}
		tools, err := pipeline.LoadTools(f.toolsFile)
		if err != nil {
			return err
		}
		if err := pipeline.CheckBinaries(tools, f.mapper); err != nil {
			return err
		}
		opts := pipeline.MapperOptions{
			Tool:      f.mapper,
			Reference: f.reference,
			Reads:     f.reads,
			Threads:   f.threads,
			Platform:  f.platform,
			Output:    f.samFile,
		}
		if err := timedRun(f.timed, "Mapping reads.", func() error {
			return pipeline.MakeAlignment(cmd.Context(), tools, opts, f.workDir, logger)
		}); err != nil {
			return err
		}
		return f.readSorted(cmd.Context(), f.samFile)
	},
}

func init() {
	f := &alignFlags
	f.register(alignCmd)
	flags := alignCmd.Flags()
	flags.StringVar(&f.reads, "reads", "", "FASTA/FASTQ file with the reads to map")
	flags.StringVar(&f.samFile, "sam", "", "intermediate sorted SAM file (default <work-dir>/alignment.sam)")
	flags.StringVar(&f.workDir, "work-dir", ".", "directory for intermediate and temporary files")
	flags.StringVar(&f.platform, "platform", pipeline.PacBio, "sequencing platform: pacbio or nano")
	flags.StringVar(&f.mapper, "mapper", pipeline.Minimap2, "mapper: minimap2 or graphmap")
	flags.StringVar(&f.toolsFile, "tools", "", "YAML file with the locations of minimap2, graphmap and sort")
	_ = alignCmd.MarkFlagRequired("reads")
}
