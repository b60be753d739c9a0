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
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/exascience/elalign/internal"
)

// AlnExt is the file extension of alignment output files.
const AlnExt = ".aln"

// FormatAlignment appends the tab-separated text representation of
// aln, terminated by a newline, to out. The columns are qry_id,
// qry_start, qry_end, qry_sign, qry_len, trg_id, trg_start, trg_end,
// trg_sign, trg_len, err_rate, qry_seq and trg_seq.
func FormatAlignment(aln *Alignment, out []byte) []byte {
	out = append(out, aln.QryID...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(aln.QryStart), 10)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(aln.QryEnd), 10)
	out = append(out, '\t', byte(aln.QrySign), '\t')
	out = strconv.AppendInt(out, int64(aln.QryLen), 10)
	out = append(out, '\t')
	out = append(out, aln.TrgID...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(aln.TrgStart), 10)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(aln.TrgEnd), 10)
	out = append(out, '\t', byte(aln.TrgSign), '\t')
	out = strconv.AppendInt(out, int64(aln.TrgLen), 10)
	out = append(out, '\t')
	out = strconv.AppendFloat(out, aln.ErrRate, 'f', 6, 64)
	out = append(out, '\t')
	out = append(out, aln.QrySeq...)
	out = append(out, '\t')
	out = append(out, aln.TrgSeq...)
	return append(out, '\n')
}

// An AlignmentWriter writes chunks of alignments in the format of
// FormatAlignment. It is safe for concurrent use; the alignments of
// one chunk are always written contiguously.
type AlignmentWriter struct {
	mutex  sync.Mutex
	closer io.Closer
	buf    *bufio.Writer
}

// NewAlignmentWriter returns an AlignmentWriter that writes to w.
func NewAlignmentWriter(w io.Writer) *AlignmentWriter {
	return &AlignmentWriter{buf: bufio.NewWriter(w)}
}

// CreateAlignmentFile creates an alignment output file. If the name
// is "/dev/stdout", the output is written to os.Stdout.
func CreateAlignmentFile(name string) (*AlignmentWriter, error) {
	if name == "/dev/stdout" {
		return NewAlignmentWriter(os.Stdout), nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w := NewAlignmentWriter(file)
	w.closer = file
	return w, nil
}

// WriteChunk writes all alignments of the chunk.
func (w *AlignmentWriter) WriteChunk(chunk *Chunk) error {
	out := internal.ReserveByteBuffer()
	for _, aln := range chunk.Alignments {
		out = FormatAlignment(aln, out)
	}
	defer internal.ReleaseByteBuffer(out)
	w.mutex.Lock()
	defer w.mutex.Unlock()
	_, err := w.buf.Write(out)
	return err
}

// Close flushes the output, and closes the underlying file if it
// was created by CreateAlignmentFile.
func (w *AlignmentWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	err := w.buf.Flush()
	if w.closer != nil {
		if nerr := w.closer.Close(); err == nil {
			err = nerr
		}
	}
	return err
}
