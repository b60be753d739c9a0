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
	"sort"
	"strings"
)

// Reference is a read-only catalog of contig sequences, indexed both
// by contig name and by a dense contig index. It can be shared between
// goroutines without synchronization once constructed.
type Reference struct {
	ids   []string
	seqs  [][]byte
	index map[string]int
}

// NewReference builds a Reference from parsed FASTA contents. Contig
// indices follow the lexicographic order of the contig names.
func NewReference(fasta map[string][]byte) *Reference {
	ref := &Reference{
		ids:   make([]string, 0, len(fasta)),
		index: make(map[string]int, len(fasta)),
	}
	for contig := range fasta {
		ref.ids = append(ref.ids, contig)
	}
	sort.Strings(ref.ids)
	ref.seqs = make([][]byte, len(ref.ids))
	for i, contig := range ref.ids {
		ref.index[contig] = i
		ref.seqs[i] = fasta[contig]
	}
	return ref
}

// LoadReference parses a (possibly gzip compressed) FASTA file
// into a Reference, normalizing all bases to upper case.
func LoadReference(filename string) (*Reference, error) {
	fasta, err := ParseFasta(filename, true)
	if err != nil {
		return nil, err
	}
	return NewReference(fasta), nil
}

// ContigIndex returns the dense index of the given contig.
func (ref *Reference) ContigIndex(contig string) (int, bool) {
	i, ok := ref.index[contig]
	return i, ok
}

// ContigSeq returns the sequence of the contig with the given index.
func (ref *Reference) ContigSeq(index int) []byte {
	return ref.seqs[index]
}

// ContigIDs returns the contig names in index order.
func (ref *Reference) ContigIDs() []string {
	return ref.ids
}

// Len returns the number of contigs.
func (ref *Reference) Len() int {
	return len(ref.ids)
}

// ContigInfo describes one contig of an assembly.
type ContigInfo struct {
	ID       string
	Length   int
	Category string
}

// ContigCategory returns the classification token of a contig name,
// which is the prefix up to the first underscore, as in "contig_12"
// or "circular_3".
func ContigCategory(id string) string {
	if i := strings.IndexByte(id, '_'); i >= 0 {
		return id[:i]
	}
	return id
}

// ContigsInfo derives the ContigInfo of every contig in ref.
func ContigsInfo(ref *Reference) map[string]ContigInfo {
	info := make(map[string]ContigInfo, ref.Len())
	for i, id := range ref.ids {
		info[id] = ContigInfo{
			ID:       id,
			Length:   len(ref.seqs[i]),
			Category: ContigCategory(id),
		}
	}
	return info
}
