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
	"errors"
	"testing"
)

func cigarsEqual(cigars1, cigars2 []CigarOperation) bool {
	if len(cigars1) != len(cigars2) {
		return false
	}
	for i, op := range cigars1 {
		if op != cigars2[i] {
			return false
		}
	}
	return true
}

func TestScanCigarString(t *testing.T) {
	if cigars, err := ScanCigarString("*"); err != nil || cigars != nil {
		t.Error("ScanCigarString * failed")
	}
	if cigars, err := ScanCigarString("3H10M2H"); err != nil || !cigarsEqual(cigars, []CigarOperation{{3, 'H'}, {10, 'M'}, {2, 'H'}}) {
		t.Error("ScanCigarString 1 failed")
	}
	if cigars, err := ScanCigarString("5m1i2d3=4x"); err != nil || !cigarsEqual(cigars, []CigarOperation{{5, 'M'}, {1, 'I'}, {2, 'D'}, {3, '='}, {4, 'X'}}) {
		t.Error("ScanCigarString 2 failed")
	}
	if _, err := ScanCigarString("5M3Q"); !errors.Is(err, ErrUnsupportedOperation) {
		t.Error("ScanCigarString 3 failed")
	}
	if _, err := ScanCigarString("5M3"); !errors.Is(err, ErrMalformedRecord) {
		t.Error("ScanCigarString 4 failed")
	}
	if _, err := ScanCigarString("99999999999M"); !errors.Is(err, ErrMalformedRecord) {
		t.Error("ScanCigarString 5 failed")
	}
}

func TestCigarLengths(t *testing.T) {
	cigars, err := ScanCigarString("2H3S10M2I4D1N3S")
	if err != nil {
		t.Fatal(err)
	}
	if n := ReadLengthFromCigar(cigars); n != 18 {
		t.Errorf("ReadLengthFromCigar == %v, expected 18", n)
	}
	if n := ReferenceLengthFromCigar(cigars); n != 15 {
		t.Errorf("ReferenceLengthFromCigar == %v, expected 15", n)
	}
}
