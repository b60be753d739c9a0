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

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvocationFailure is matched by every *InvocationError.
	ErrInvocationFailure = errors.New("external tool failed")

	// ErrBinaryNotFound is reported by CheckBinaries.
	ErrBinaryNotFound = errors.New("external tool not installed")
)

// InvocationError reports a failed run of an external tool.
type InvocationError struct {
	Tool string
	// OutOfMemory is set when the tool was killed with SIGKILL,
	// which usually means the kernel ran out of memory.
	OutOfMemory bool
	Err         error
}

func (e *InvocationError) Error() string {
	if e.OutOfMemory {
		return fmt.Sprintf("%v (%v): %v, possibly out of memory", ErrInvocationFailure, e.Tool, e.Err)
	}
	return fmt.Sprintf("%v (%v): %v", ErrInvocationFailure, e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvocationFailure) hold.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocationFailure
}
