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
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/exascience/elalign/fasta"
)

var contigsCmd = &cobra.Command{
	Use:   "contigs fasta-file",
	Short: "Print id, length and category of every contig in a FASTA file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkExist("fasta-file", args[0]); err != nil {
			return err
		}
		ref, err := fasta.LoadReference(args[0])
		if err != nil {
			return err
		}
		info := fasta.ContigsInfo(ref)
		out := bufio.NewWriter(os.Stdout)
		for _, id := range ref.ContigIDs() {
			ctg := info[id]
			fmt.Fprintf(out, "%v\t%v\t%v\n", ctg.ID, ctg.Length, ctg.Category)
		}
		return out.Flush()
	},
}
