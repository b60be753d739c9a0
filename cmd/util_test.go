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

package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExist(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ref.fasta")
	if err := os.WriteFile(existing, []byte(">a\nACGT\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := checkExist("--reference", existing); err != nil {
		t.Error(err)
	}
	for _, filename := range []string{"", "--output", filepath.Join(dir, "missing.fasta")} {
		if err := checkExist("--reference", filename); err == nil {
			t.Errorf("checkExist accepted %q", filename)
		}
	}
}

func TestCheckCreate(t *testing.T) {
	dir := t.TempDir()
	for _, filename := range []string{"/dev/stdout", filepath.Join(dir, "sub", "out.aln")} {
		if err := checkCreate("--output", filename); err != nil {
			t.Error(err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "out.aln")); !os.IsNotExist(err) {
		t.Error("checkCreate left a file behind")
	}
	for _, filename := range []string{"", "-v"} {
		if err := checkCreate("--output", filename); err == nil {
			t.Errorf("checkCreate accepted %q", filename)
		}
	}
}
