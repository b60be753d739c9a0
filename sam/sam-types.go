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
	"strconv"
	"strings"
)

// SAM flag bits.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

// Positions of the mandatory fields in a SAM alignment line.
const (
	qnameField = 0
	flagField  = 1
	rnameField = 2
	posField   = 3
	cigarField = 5
	seqField   = 9

	mandatoryFields = 11
)

// Strand is the orientation of one side of an alignment.
type Strand byte

// Strands, using their conventional one-character representation.
const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) String() string {
	return string(s)
}

// Alignment is a decoded pairwise alignment of a read (query) against a
// contig (target). Offsets are 0-based and end-exclusive. QrySeq and
// TrgSeq have equal length and use '-' for gaps.
type Alignment struct {
	QryID    string
	QryStart int
	QryEnd   int
	QrySign  Strand
	QryLen   int
	TrgID    string
	TrgStart int
	TrgEnd   int
	TrgSign  Strand
	TrgLen   int
	QrySeq   string
	TrgSeq   string
	ErrRate  float64
}

// Chunk holds the alignments of one contig, in file order.
type Chunk struct {
	Contig     string
	Alignments []*Alignment
}

// record is the part of a SAM alignment line that is needed to
// build an Alignment. Fields are split once during the scan;
// numeric fields other than FLAG are only parsed when decoding.
type record struct {
	fields []string
	flag   uint16
}

func splitRecord(line string) (rec record, err error) {
	rec.fields = strings.Fields(line)
	if len(rec.fields) < mandatoryFields {
		return rec, fmt.Errorf("%w: %v fields instead of at least %v", ErrMalformedRecord, len(rec.fields), mandatoryFields)
	}
	flag, err := strconv.ParseUint(rec.fields[flagField], 10, 16)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid FLAG %v in record %v", ErrMalformedRecord, rec.fields[flagField], rec.fields[qnameField])
	}
	rec.flag = uint16(flag)
	return rec, nil
}

func (rec record) qname() string { return rec.fields[qnameField] }
func (rec record) rname() string { return rec.fields[rnameField] }
func (rec record) cigar() string { return rec.fields[cigarField] }
func (rec record) seq() string   { return rec.fields[seqField] }

func (rec record) isUnmapped() bool  { return (rec.flag&Unmapped) != 0 || rec.rname() == "*" }
func (rec record) isSecondary() bool { return (rec.flag & Secondary) != 0 }
func (rec record) isReversed() bool  { return (rec.flag & Reversed) != 0 }

// pos returns the 0-based start position of the record on its contig.
func (rec record) pos() (int, error) {
	pos, err := strconv.ParseInt(rec.fields[posField], 10, 32)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("%w: invalid POS %v in record %v", ErrMalformedRecord, rec.fields[posField], rec.qname())
	}
	return int(pos) - 1, nil
}
