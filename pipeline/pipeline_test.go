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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/exascience/elalign/fasta"
	"github.com/exascience/elalign/sam"
)

const testContig = "ACGTACGTACGTACGTACGT"

func samLine(qname string, flag int, rname string, pos int, cigar, seq string) string {
	return fmt.Sprintf("%v\t%v\t%v\t%v\t60\t%v\t*\t0\t0\t%v\t*\n", qname, flag, rname, pos, cigar, seq)
}

func testReference(contigs ...string) *fasta.Reference {
	seqs := make(map[string][]byte, len(contigs))
	for _, contig := range contigs {
		seqs[contig] = []byte(testContig)
	}
	return fasta.NewReference(seqs)
}

// sortedSam writes a SAM file with nrOfContigs contigs, each with
// alignmentsPerContig records, and returns its path and the contig names.
func sortedSam(t *testing.T, nrOfContigs, alignmentsPerContig int) (string, []string) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("@HD\tVN:1.6\n")
	contigs := make([]string, nrOfContigs)
	for c := range contigs {
		contigs[c] = fmt.Sprintf("contig_%03d", c)
		for i := 0; i < alignmentsPerContig; i++ {
			sb.WriteString(samLine(fmt.Sprintf("read_%v_%v", c, i), 0, contigs[c], 1+i, "8M", "ACGTACGT"))
		}
	}
	path := filepath.Join(t.TempDir(), "aln.sam")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0666))
	return path, contigs
}

func TestCheckBinaries(t *testing.T) {
	tools := DefaultTools()
	tools.Minimap2 = writeScript(t, "minimap2", "exit 0")
	tools.Sort = writeScript(t, "sort", "exit 0")
	assert.NoError(t, CheckBinaries(tools, Minimap2))

	tools.GraphMap = filepath.Join(t.TempDir(), "graphmap")
	assert.True(t, errors.Is(CheckBinaries(tools, GraphMap), ErrBinaryNotFound))
	assert.Error(t, CheckBinaries(tools, "bwa"))
}

func TestCollectAlignments(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, contigs := sortedSam(t, 50, 3)
	result, err := CollectAlignments(context.Background(), path, testReference(contigs...), ReadOptions{
		Workers: 4,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	require.Len(t, result, len(contigs))
	for i, contig := range contigs {
		alns := result[contig]
		require.Len(t, alns, 3, contig)
		for j, aln := range alns {
			assert.Equal(t, fmt.Sprintf("read_%v_%v", i, j), aln.QryID)
			assert.Equal(t, contig, aln.TrgID)
			assert.Equal(t, j, aln.TrgStart)
		}
	}
}

func TestReadAlignmentsEachContigOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	path, contigs := sortedSam(t, 100, 2)
	var mutex sync.Mutex
	var seen []string
	err := ReadAlignments(context.Background(), path, testReference(contigs...), ReadOptions{Workers: 8},
		func(chunk *sam.Chunk) error {
			mutex.Lock()
			defer mutex.Unlock()
			seen = append(seen, chunk.Contig)
			return nil
		})
	require.NoError(t, err)
	sort.Strings(seen)
	assert.Equal(t, contigs, seen)
}

func TestReadAlignmentsMinLength(t *testing.T) {
	path, contigs := sortedSam(t, 2, 2)
	result, err := CollectAlignments(context.Background(), path, testReference(contigs...), ReadOptions{
		Workers:            2,
		MinAlignmentLength: 9,
	})
	require.NoError(t, err)
	for _, contig := range contigs {
		assert.Empty(t, result[contig])
	}
}

func TestReadAlignmentsHandlerError(t *testing.T) {
	defer goleak.VerifyNone(t)

	errStop := errors.New("stop")
	path, contigs := sortedSam(t, 20, 1)
	err := ReadAlignments(context.Background(), path, testReference(contigs...), ReadOptions{Workers: 4},
		func(chunk *sam.Chunk) error {
			if chunk.Contig == "contig_007" {
				return errStop
			}
			return nil
		})
	assert.True(t, errors.Is(err, errStop))
}

func TestReadAlignmentsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := CollectAlignments(context.Background(), filepath.Join(t.TempDir(), "missing.sam"),
		testReference("a"), ReadOptions{Workers: 2})
	assert.True(t, errors.Is(err, sam.ErrStreamNotFound))

	path, _ := sortedSam(t, 3, 1)
	_, err = CollectAlignments(context.Background(), path, testReference("contig_000"), ReadOptions{Workers: 2})
	assert.True(t, errors.Is(err, sam.ErrUnknownContig))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path, contigs := sortedSam(t, 3, 1)
	_, err = CollectAlignments(ctx, path, testReference(contigs...), ReadOptions{Workers: 2})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMakeAlignment(t *testing.T) {
	requireSort(t)
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	reads := filepath.Join(dir, "reads.sam")
	require.NoError(t, os.WriteFile(reads, []byte(strings.Join([]string{
		"@HD\tVN:1.6\n",
		samLine("r1", 0, "contig_2", 1, "8M", "ACGTACGT"),
		samLine("r2", 16, "contig_1", 3, "4M", "GTAC"),
		samLine("r3", 0, "contig_2", 5, "2S4M", "TTACGT"),
	}, "")), 0666))

	tools := DefaultTools()
	tools.Minimap2 = writeScript(t, "minimap2", `cat "$2"`)
	out := filepath.Join(dir, "out.sam")
	require.NoError(t, MakeAlignment(context.Background(), tools, MapperOptions{
		Tool:      Minimap2,
		Reference: "ref.fasta",
		Reads:     reads,
		Threads:   1,
		Platform:  Nanopore,
		Output:    out,
	}, dir, zaptest.NewLogger(t)))

	result, err := CollectAlignments(context.Background(), out, testReference("contig_1", "contig_2"), ReadOptions{
		Workers:         2,
		StrictSortCheck: true,
	})
	require.NoError(t, err)
	require.Len(t, result["contig_1"], 1)
	assert.Equal(t, sam.Reverse, result["contig_1"][0].QrySign)
	assert.Equal(t, "GTAC", result["contig_1"][0].TrgSeq)

	require.Len(t, result["contig_2"], 2)
	names := []string{result["contig_2"][0].QryID, result["contig_2"][1].QryID}
	sort.Strings(names)
	assert.Equal(t, []string{"r1", "r3"}, names)
}
