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

import "errors"

// Errors reported while reading and decoding alignment files. They are
// wrapped with additional context, so use errors.Is to test for them.
var (
	// ErrStreamNotFound is reported when the alignment file does not exist.
	ErrStreamNotFound = errors.New("alignment file not found")

	// ErrMalformedRecord is reported for alignment lines that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed SAM record")

	// ErrUnsupportedOperation is reported for CIGAR operations that cannot be decoded.
	ErrUnsupportedOperation = errors.New("unsupported CIGAR operation")

	// ErrEmptyAlignment is reported when a CIGAR string yields no aligned columns.
	ErrEmptyAlignment = errors.New("empty alignment")

	// ErrUnsortedInput is reported when records of one contig are not contiguous.
	ErrUnsortedInput = errors.New("alignment file is not sorted")

	// ErrUnknownContig is reported for records against contigs missing from the reference.
	ErrUnknownContig = errors.New("unknown contig")
)
