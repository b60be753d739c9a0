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
	"log"

	"github.com/exascience/pargo/parallel"
)

/*
ShiftGaps canonicalizes the placement of gaps in query, the query side
of a pairwise alignment against target, and returns the result.

Each maximal run of gaps in query is moved towards the start of the
alignment for as long as this does not change the alignment: the query
base immediately before the run is moved to the last column of the run
whenever it matches the target base in that column. A run that reaches
an earlier gap run joins it, and the joined run keeps moving. The
result has the same length and the same non-gap bases as query, and
ShiftGaps(target, ShiftGaps(target, query)) == ShiftGaps(target, query).

target and query must have equal length.
*/
func ShiftGaps(target, query string) string {
	if len(target) != len(query) {
		log.Panicf("ShiftGaps called with aligned sequences of different lengths %v and %v", len(target), len(query))
	}
	qry := []byte(query)
	for i := 0; i < len(qry); {
		if qry[i] != GapChar {
			i++
			continue
		}
		start := i
		for i < len(qry) && qry[i] == GapChar {
			i++
		}
		end := i
		for start > 0 {
			if prev := qry[start-1]; prev == GapChar {
				start--
			} else if prev == target[end-1] {
				qry[start-1], qry[end-1] = GapChar, prev
				start--
				end--
			} else {
				break
			}
		}
	}
	return string(qry)
}

// shiftChunkGaps applies ShiftGaps to the query side of all
// given alignments in parallel.
func shiftChunkGaps(alns []*Alignment) {
	if len(alns) == 0 {
		return
	}
	parallel.Range(0, len(alns), 0, func(low, high int) {
		for _, aln := range alns[low:high] {
			aln.QrySeq = ShiftGaps(aln.TrgSeq, aln.QrySeq)
		}
	})
}
