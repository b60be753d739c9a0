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

// Package sam reads sorted SAM alignment files in contig-sized chunks,
// and turns their records into gapped pairwise alignments against the
// contigs of an assembly.
//
// A ChunkSource represents one sorted alignment file. Any number of
// ChunkReaders can be created for it, typically one per goroutine;
// each NextChunk call hands out all primary, mapped records of the next
// contig in the file, decoded into Alignments. Only the scan for the
// contig boundary is serialized between readers; decoding the CIGAR
// strings of a chunk happens in the calling goroutine without holding
// any lock.
//
// DecodeCigar and ShiftGaps are available separately for callers that
// obtain alignment records in other ways.
package sam
