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
	"fmt"

	"github.com/exascience/elalign/fasta"
	"github.com/exascience/elalign/internal"
)

// GapChar marks an indel column in the aligned sequences of an Alignment.
const GapChar = '-'

func appendBases(dst []byte, src string) []byte {
	for i := 0; i < len(src); i++ {
		dst = append(dst, fasta.ToUpperAndN(src[i]))
	}
	return dst
}

func appendRefBases(dst []byte, src []byte) []byte {
	for _, c := range src {
		dst = append(dst, fasta.ToUpperAndN(c))
	}
	return dst
}

func appendGaps(dst []byte, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, GapChar)
	}
	return dst
}

/*
DecodeCigar reconstructs the gapped target and query sequences of a
SAM alignment line from its CIGAR string, the sequence of the contig
it aligns to, the read sequence from the SEQ field, and the 0-based
position on the contig where the alignment starts.

The returned Alignment has all coordinate fields, both aligned
sequences and the error rate set; identifiers and strands are left to
the caller, except TrgSign, which is always Forward. Query coordinates
refer to the full, unclipped read: hard clipped bases, which are absent
from query, are still counted in QryStart and QryLen.

Hard clips must only occur as the first and/or last operations.
*/
func DecodeCigar(cigar string, ref []byte, query string, refStart int) (aln Alignment, err error) {
	ops, err := ScanCigarString(cigar)
	if err != nil {
		return aln, err
	}
	if query == "*" {
		query = ""
	}
	if refLength := ReferenceLengthFromCigar(ops); refStart < 0 || refStart+refLength > len(ref) {
		return aln, fmt.Errorf("%w: CIGAR string %v covers %v contig bases from position %v, but the contig has length %v",
			ErrMalformedRecord, cigar, refLength, refStart, len(ref))
	}
	if readLength := ReadLengthFromCigar(ops); readLength > len(query) {
		return aln, fmt.Errorf("%w: CIGAR string %v covers %v read bases, but SEQ has length %v",
			ErrMalformedRecord, cigar, readLength, len(query))
	}

	trg := internal.ReserveByteBuffer()
	qry := internal.ReserveByteBuffer()
	defer func() {
		internal.ReleaseByteBuffer(trg)
		internal.ReleaseByteBuffer(qry)
	}()

	trgPos, qryPos := refStart, 0
	var hardClippedLeft, hardClippedRight, softClippedLeft, alignedQuery int
	leading := true
	for _, op := range ops {
		size := int(op.Length)
		switch op.Operation {
		case 'H':
			if leading {
				hardClippedLeft += size
			} else {
				hardClippedRight += size
			}
		case 'S':
			if leading {
				softClippedLeft += size
			}
			qryPos += size
		case 'M', '=', 'X':
			qry = appendBases(qry, query[qryPos:qryPos+size])
			trg = appendRefBases(trg, ref[trgPos:trgPos+size])
			qryPos += size
			trgPos += size
			alignedQuery += size
			leading = false
		case 'I':
			qry = appendBases(qry, query[qryPos:qryPos+size])
			trg = appendGaps(trg, size)
			qryPos += size
			alignedQuery += size
			leading = false
		case 'D', 'N':
			qry = appendGaps(qry, size)
			trg = appendRefBases(trg, ref[trgPos:trgPos+size])
			trgPos += size
			leading = false
		default:
			return aln, fmt.Errorf("%w %c in CIGAR string %v", ErrUnsupportedOperation, op.Operation, cigar)
		}
	}

	if len(trg) == 0 {
		return aln, fmt.Errorf("%w: CIGAR string %v has no aligned columns", ErrEmptyAlignment, cigar)
	}
	matches := 0
	for i, c := range trg {
		if c == qry[i] {
			matches++
		}
	}

	aln.TrgStart = refStart
	aln.TrgEnd = trgPos
	aln.TrgLen = len(ref)
	aln.TrgSign = Forward
	aln.TrgSeq = string(trg)
	aln.QryStart = hardClippedLeft + softClippedLeft
	aln.QryEnd = aln.QryStart + alignedQuery
	aln.QryLen = hardClippedLeft + qryPos + hardClippedRight
	aln.QrySign = Forward
	aln.QrySeq = string(qry)
	aln.ErrRate = 1 - float64(matches)/float64(len(trg))
	return aln, nil
}
