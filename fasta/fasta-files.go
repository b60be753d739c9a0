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

package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i + 1
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	if i >= len(b) {
		return ""
	}
	return string(b[i:j])
}

var iupacUpperTable = [256]byte{}

func init() {
	for c := 0; c < 256; c++ {
		iupacUpperTable[c] = byte(c)
	}
	for _, c := range "ACGTN" {
		iupacUpperTable[c] = byte(c)
		iupacUpperTable[c+'a'-'A'] = byte(c)
	}
	for _, c := range "RYMKWSBDHV" {
		iupacUpperTable[c] = 'N'
		iupacUpperTable[c+'a'-'A'] = 'N'
	}
}

// ToUpperAndN can be used to normalize ambiguity codes in FASTA references,
// and convert all codes to upper case.
func ToUpperAndN(base byte) byte {
	return iupacUpperTable[base]
}

// IsGzip determines if the the given byte scanner produces
// a gzip file. It uses ReadByte and UnreadByte to check
// only the initial byte from the input.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// handleGzip either returns a gzip reader for buf, if its first
// byte announces a gzip (or bgzf) stream, or buf unchanged.
func handleGzip(buf *bufio.Reader) (io.Reader, error) {
	if ok, err := IsGzip(buf); err == io.EOF {
		return buf, nil
	} else if err != nil {
		return nil, err
	} else if ok {
		return gzip.NewReader(buf)
	}
	return buf, nil
}

// ParseFasta sequentially parses a FASTA file, which may be gzip
// compressed.
//
// If toUpperAndN is true, the contents are converted to upper case,
// and ambiguity codes are normalized to N.
func ParseFasta(filename string, toUpperAndN bool) (fasta map[string][]byte, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	r, err := handleGzip(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%v while opening fasta file %v", err, filename)
	}
	return parseFasta(r, filename, toUpperAndN)
}

func parseFasta(r io.Reader, filename string, toUpperAndN bool) (map[string][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)

	var b []byte
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("empty fasta file %v", filename)
		}
		if b = scanner.Bytes(); len(b) > 0 {
			break
		}
	}
	if b[0] != '>' {
		return nil, fmt.Errorf("invalid fasta file %v - missing first header", filename)
	}

	contig := contigFromHeader(b)
	var seq []byte
	fasta := make(map[string][]byte)

	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if b[0] == '>' {
			if _, dup := fasta[contig]; dup {
				return nil, fmt.Errorf("invalid fasta file %v - duplicate contig %v", filename, contig)
			}
			fasta[contig] = seq
			contig = contigFromHeader(b)
			seq = nil
			continue
		}
		if toUpperAndN {
			for i, c := range b {
				b[i] = iupacUpperTable[c]
			}
		}
		seq = append(seq, b...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if _, dup := fasta[contig]; dup {
		return nil, fmt.Errorf("invalid fasta file %v - duplicate contig %v", filename, contig)
	}
	fasta[contig] = seq

	return fasta, nil
}
