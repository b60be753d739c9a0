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
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/willf/bitset"
)

// ReferenceLookup gives read-only access to the contigs that
// alignments refer to. Implementations must be safe for concurrent
// use; *fasta.Reference is one.
type ReferenceLookup interface {
	ContigIndex(contig string) (int, bool)
	ContigSeq(index int) []byte
}

/*
A ChunkSource represents a SAM file in which all records that share
the same RNAME are adjacent, for example because it was sorted on
that field. It hands out the records of one contig at a time to the
ChunkReaders created for it.

The read position in the file and the end-of-file flag are shared by
all readers of a source, and are only accessed while holding the
source's mutex.
*/
type ChunkSource struct {
	path               string
	ref                ReferenceLookup
	minAlignmentLength int
	strictSortCheck    bool
	shiftGaps          bool

	mutex     sync.Mutex
	position  int64
	eof       bool
	finalized *bitset.BitSet
}

// A ChunkOption configures a ChunkSource.
type ChunkOption func(*ChunkSource)

// WithMinAlignmentLength drops alignments that cover fewer than n
// read bases, not counting clipped bases.
func WithMinAlignmentLength(n int) ChunkOption {
	return func(src *ChunkSource) { src.minAlignmentLength = n }
}

// WithStrictSortCheck makes every reader of the source detect records
// of a contig that any reader already finished. By default, readers
// only detect contigs that they finished themselves.
func WithStrictSortCheck() ChunkOption {
	return func(src *ChunkSource) { src.strictSortCheck = true }
}

// WithShiftGaps applies ShiftGaps to every alignment handed out.
func WithShiftGaps() ChunkOption {
	return func(src *ChunkSource) { src.shiftGaps = true }
}

// NewChunkSource creates a ChunkSource for the sorted SAM file at path,
// resolving contigs through ref.
func NewChunkSource(path string, ref ReferenceLookup, options ...ChunkOption) *ChunkSource {
	src := &ChunkSource{path: path, ref: ref}
	for _, option := range options {
		option(src)
	}
	if src.strictSortCheck {
		src.finalized = bitset.New(0)
	}
	return src
}

// Path returns the path of the underlying SAM file.
func (src *ChunkSource) Path() string {
	return src.path
}

/*
A ChunkReader reads chunks from a ChunkSource through its own file
handle. A ChunkReader must only be used by one goroutine at a time;
use one ChunkReader per goroutine to read a source concurrently.
*/
type ChunkReader struct {
	source    *ChunkSource
	file      *os.File
	buf       *bufio.Reader
	finalized *bitset.BitSet
}

// NewReader opens a new ChunkReader for the source.
func (src *ChunkSource) NewReader() (*ChunkReader, error) {
	file, err := os.Open(src.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrStreamNotFound, src.path)
		}
		return nil, err
	}
	return &ChunkReader{
		source:    src,
		file:      file,
		buf:       bufio.NewReaderSize(file, 1<<16),
		finalized: bitset.New(0),
	}, nil
}

// Close closes the file handle of the reader.
func (r *ChunkReader) Close() error {
	return r.file.Close()
}

func (r *ChunkReader) isFinalized(contig int) bool {
	if r.finalized.Test(uint(contig)) {
		return true
	}
	return r.source.finalized != nil && r.source.finalized.Test(uint(contig))
}

func (r *ChunkReader) finalize(contig int) {
	r.finalized.Set(uint(contig))
	if r.source.finalized != nil {
		r.source.finalized.Set(uint(contig))
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// scan collects the primary, mapped records of the next contig
// in the source, and advances the shared position past them.
func (r *ChunkReader) scan() (contig int, records []record, err error) {
	src := r.source
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.eof {
		return 0, nil, io.EOF
	}
	if _, err := r.file.Seek(src.position, io.SeekStart); err != nil {
		return 0, nil, err
	}
	r.buf.Reset(r.file)

	position := src.position
	contig = -1
	for {
		line, err := r.buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, nil, err
		}
		if len(line) == 0 {
			break
		}
		lineStart := position
		position += int64(len(line))
		if line[0] == '@' || isBlank(line) {
			continue
		}
		rec, err := splitRecord(line)
		if err != nil {
			return 0, nil, fmt.Errorf("%w, at byte offset %v of %v", err, lineStart, src.path)
		}
		if rec.isUnmapped() || rec.isSecondary() {
			continue
		}
		index, ok := src.ref.ContigIndex(rec.rname())
		if !ok {
			return 0, nil, fmt.Errorf("%w %v in record %v of %v", ErrUnknownContig, rec.rname(), rec.qname(), src.path)
		}
		if contig >= 0 && index != contig {
			src.position = lineStart
			r.finalize(contig)
			return contig, records, nil
		}
		if contig < 0 && r.isFinalized(index) {
			return 0, nil, fmt.Errorf("%w: records for contig %v appear in more than one block of %v", ErrUnsortedInput, rec.rname(), src.path)
		}
		contig = index
		records = append(records, rec)
	}

	src.position = position
	src.eof = true
	if contig < 0 {
		return 0, nil, io.EOF
	}
	r.finalize(contig)
	return contig, records, nil
}

/*
NextChunk returns the alignments of the next contig in the source. It
returns io.EOF when all records of the source have been handed out.

Unmapped and secondary records are skipped, as are alignments that are
shorter than the minimum alignment length of the source; the remaining
alignments are in file order. A chunk may therefore have no
alignments.

NextChunk can be called concurrently on different ChunkReaders of the
same source. Each contig is handed out to exactly one of them.
*/
func (r *ChunkReader) NextChunk() (*Chunk, error) {
	index, records, err := r.scan()
	if err != nil {
		return nil, err
	}
	src := r.source
	contig := records[0].rname()
	seq := src.ref.ContigSeq(index)
	alns := make([]*Alignment, 0, len(records))
	for _, rec := range records {
		pos, err := rec.pos()
		if err != nil {
			return nil, err
		}
		aln, err := DecodeCigar(rec.cigar(), seq, rec.seq(), pos)
		if err != nil {
			return nil, fmt.Errorf("%w, in record %v of %v", err, rec.qname(), src.path)
		}
		if aln.QryEnd-aln.QryStart < src.minAlignmentLength {
			continue
		}
		aln.QryID = rec.qname()
		aln.TrgID = contig
		if rec.isReversed() {
			aln.QrySign = Reverse
		}
		alns = append(alns, &aln)
	}
	if src.shiftGaps {
		shiftChunkGaps(alns)
	}
	return &Chunk{Contig: contig, Alignments: alns}, nil
}
