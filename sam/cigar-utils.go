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
)

// CigarOperations lists the recognized CIGAR operation characters.
const CigarOperations = "MmIiDdNnSsHhPpXx="

var cigarOperationsTable [256]byte

func init() {
	for _, c := range CigarOperations {
		if 'a' <= c && c <= 'z' {
			cigarOperationsTable[c] = byte(c - 'a' + 'A')
		} else {
			cigarOperationsTable[c] = byte(c)
		}
	}
}

func isDigit(char byte) bool { return ('0' <= char) && (char <= '9') }

// CigarOperation is one run of a CIGAR string.
type CigarOperation struct {
	Length    int32
	Operation byte
}

func newCigarOperation(cigar string, i int) (op CigarOperation, j int, err error) {
	for j = i; j < len(cigar) && isDigit(cigar[j]); j++ {
	}
	if j == len(cigar) {
		return op, j, fmt.Errorf("%w: missing CIGAR operation after %v", ErrMalformedRecord, cigar[i:])
	}
	if j == i {
		if cigarOperationsTable[cigar[j]] == 0 {
			return op, j, fmt.Errorf("%w %q", ErrUnsupportedOperation, cigar[j])
		}
		return op, j, fmt.Errorf("%w: missing length for CIGAR operation %c", ErrMalformedRecord, cigar[j])
	}
	length, err := strconv.ParseInt(cigar[i:j], 10, 32)
	if err != nil {
		return op, j, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	operation := cigarOperationsTable[cigar[j]]
	if operation == 0 {
		return op, j, fmt.Errorf("%w %q", ErrUnsupportedOperation, cigar[j])
	}
	return CigarOperation{int32(length), operation}, j + 1, nil
}

// ScanCigarString splits a CIGAR string into its runs. Operation
// characters are normalized to upper case. "*" yields no runs.
func ScanCigarString(cigar string) (slice []CigarOperation, err error) {
	if cigar == "*" {
		return nil, nil
	}
	for i := 0; i < len(cigar); {
		cigarOperation, j, err := newCigarOperation(cigar, i)
		if err != nil {
			return nil, fmt.Errorf("%w, while scanning CIGAR string %v", err, cigar)
		}
		slice = append(slice, cigarOperation)
		i = j
	}
	return slice, nil
}

func operatorConsumesReadBases(operator byte) bool {
	switch operator {
	case 'M', 'I', 'S', '=', 'X':
		return true
	default:
		return false
	}
}

func operatorConsumesReferenceBases(operator byte) bool {
	switch operator {
	case 'M', 'D', 'N', '=', 'X':
		return true
	default:
		return false
	}
}

// ReadLengthFromCigar sums the lengths of all CIGAR operations that
// consume read bases, which is the expected length of the SEQ field.
func ReadLengthFromCigar(cigars []CigarOperation) int {
	var length int
	for _, op := range cigars {
		if operatorConsumesReadBases(op.Operation) {
			length += int(op.Length)
		}
	}
	return length
}

// ReferenceLengthFromCigar sums the lengths of all CIGAR operations
// that consume reference bases.
func ReferenceLengthFromCigar(cigars []CigarOperation) int {
	var length int
	for _, op := range cigars {
		if operatorConsumesReferenceBases(op.Operation) {
			length += int(op.Length)
		}
	}
	return length
}
