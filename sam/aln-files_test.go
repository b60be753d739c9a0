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

package sam

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAlignment(t *testing.T) {
	aln := &Alignment{
		QryID: "read1", QryStart: 2, QryEnd: 9, QrySign: Reverse, QryLen: 12,
		TrgID: "contig_1", TrgStart: 100, TrgEnd: 108, TrgSign: Forward, TrgLen: 5000,
		QrySeq: "ACG-TACG", TrgSeq: "ACGTTACG", ErrRate: 0.125,
	}
	assert.Equal(t,
		"read1\t2\t9\t-\t12\tcontig_1\t100\t108\t+\t5000\t0.125000\tACG-TACG\tACGTTACG\n",
		string(FormatAlignment(aln, nil)))
}

func TestAlignmentWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewAlignmentWriter(&out)
	chunk := &Chunk{Contig: "A", Alignments: []*Alignment{
		{QryID: "r1", QrySign: Forward, TrgID: "A", TrgSign: Forward, QrySeq: "A", TrgSeq: "A"},
		{QryID: "r2", QrySign: Forward, TrgID: "A", TrgSign: Forward, QrySeq: "C", TrgSeq: "C"},
	}}
	require.NoError(t, w.WriteChunk(chunk))
	require.NoError(t, w.WriteChunk(&Chunk{Contig: "B"}))
	require.NoError(t, w.Close())
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "r1\t"))
	assert.True(t, strings.HasPrefix(lines[1], "r2\t"))
}
