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
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftGaps(t *testing.T) {
	for _, test := range []struct {
		target, query, expected string
	}{
		{"", "", ""},
		{"ACGT", "ACGT", "ACGT"},
		{"AAAAC", "AAA-C", "-AAAC"},
		{"ACGTT", "ACGT-", "ACG-T"},
		{"ACGT", "A-GT", "A-GT"},
		{"CACAC", "CAC--", "--CAC"},
		{"GAAAAT", "G--AAT", "G--AAT"},
		{"GAAAAT", "GAA--T", "G--AAT"},
		{"CTGA", "G-A-", "--GA"},
	} {
		if result := ShiftGaps(test.target, test.query); result != test.expected {
			t.Errorf("ShiftGaps(%v, %v) == %v, expected %v", test.target, test.query, result, test.expected)
		}
	}
}

func TestShiftGapsMovesTowardsStart(t *testing.T) {
	target := "ACGTTTTTACGT"
	query := "ACGTTTT-ACGT"
	assert.Equal(t, "ACG-TTTTACGT", ShiftGaps(target, query))
}

func TestShiftGapsLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { ShiftGaps("ACGT", "ACG") })
}

func randomAligned(rnd *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte("ACGT-"[rnd.Intn(5)])
	}
	return b.String()
}

func sortedBases(s string) string {
	b := []byte(strings.ReplaceAll(s, "-", ""))
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

func TestShiftGapsProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		n := rnd.Intn(40)
		target, query := randomAligned(rnd, n), randomAligned(rnd, n)
		once := ShiftGaps(target, query)
		if len(once) != len(query) {
			t.Fatalf("ShiftGaps(%v, %v) changed the length to %v", target, query, len(once))
		}
		if sortedBases(once) != sortedBases(query) {
			t.Fatalf("ShiftGaps(%v, %v) == %v changed the bases", target, query, once)
		}
		if twice := ShiftGaps(target, once); twice != once {
			t.Fatalf("ShiftGaps(%v, %v) == %v is not idempotent, second pass gives %v", target, query, once, twice)
		}
	}
}

func TestShiftGapsOnDecodedAlignments(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		cigar, ref, query := randomCigar(rnd)
		aln, err := DecodeCigar(cigar, ref, query, 0)
		if err != nil {
			t.Fatal(err)
		}
		shifted := ShiftGaps(aln.TrgSeq, aln.QrySeq)
		assert.Equal(t, strings.ReplaceAll(aln.QrySeq, "-", ""), strings.ReplaceAll(shifted, "-", ""), cigar)
		assert.Equal(t, shifted, ShiftGaps(aln.TrgSeq, shifted), cigar)
	}
}
