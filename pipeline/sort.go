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
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/exascience/elalign/internal"
)

// SortByTarget sorts the SAM file at path on its RNAME field in place,
// using the external sort program, so that it can be read by a
// sam.ChunkSource. Temporary files of sort go to workDir.
func SortByTarget(ctx context.Context, tools *Tools, path, workDir string, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workDir, err = internal.FullPathname(workDir)
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), filepath.Base(path)+"_sorted_"+uuid.NewString())
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	cmd := exec.CommandContext(ctx, tools.Sort, "-k", "3,3", "-T", workDir, path)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stdout = out
	err = runTool(ctx, cmd, logger)
	if nerr := out.Close(); err == nil {
		err = nerr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
