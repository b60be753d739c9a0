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
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Supported mappers.
const (
	Minimap2 = "minimap2"
	GraphMap = "graphmap"
)

// Supported sequencing platforms.
const (
	PacBio   = "pacbio"
	Nanopore = "nano"
)

// MapperOptions describes one mapper run.
type MapperOptions struct {
	Tool      string
	Reference string
	Reads     string
	Threads   int
	Platform  string
	Output    string
}

func (t *Tools) binary(tool string) (string, error) {
	switch tool {
	case Minimap2, "":
		return t.Minimap2, nil
	case GraphMap:
		return t.GraphMap, nil
	default:
		return "", fmt.Errorf("unknown mapper %v", tool)
	}
}

// mapperCommandLine returns the program and arguments for a mapper
// run, and whether the SAM output is written to stdout.
func mapperCommandLine(tools *Tools, opts MapperOptions) (name string, args []string, toStdout bool, err error) {
	name, err = tools.binary(opts.Tool)
	if err != nil {
		return "", nil, false, err
	}
	threads := strconv.Itoa(opts.Threads)
	if opts.Tool == GraphMap {
		return name, []string{"align", "-r", opts.Reference, "-d", opts.Reads,
			"-t", threads, "-b", "0", "-o", opts.Output}, false, nil
	}
	args = []string{opts.Reference, opts.Reads, "-a", "-Q",
		"-w5", "-m100", "-g10000", "--max-chain-skip", "25",
		"-t", threads}
	if opts.Platform == Nanopore {
		args = append(args, "-k15")
	} else {
		args = append(args, "-Hk19")
	}
	return name, args, true, nil
}

func killedBySIGKILL(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && status.Signaled() && status.Signal() == unix.SIGKILL
}

// runTool runs cmd, and wraps any failure in an *InvocationError.
func runTool(ctx context.Context, cmd *exec.Cmd, logger *zap.Logger) error {
	logger.Debug("Running external tool", zap.String("tool", cmd.Path), zap.Strings("args", cmd.Args[1:]))
	if err := cmd.Run(); err != nil {
		ierr := &InvocationError{Tool: cmd.Path, Err: err}
		if ctx.Err() == nil && killedBySIGKILL(err) {
			ierr.OutOfMemory = true
			logger.Error("Looks like the system ran out of memory", zap.String("tool", cmd.Path))
		}
		return ierr
	}
	return nil
}

// RunMapper runs the configured mapper, which writes its SAM output to
// opts.Output. The standard error of the mapper is discarded.
func RunMapper(ctx context.Context, tools *Tools, opts MapperOptions, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	name, args, toStdout, err := mapperCommandLine(tools, opts)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if toStdout {
		var out *os.File
		out, err = os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer func() {
			if nerr := out.Close(); err == nil {
				err = nerr
			}
		}()
		cmd.Stdout = out
	}
	return runTool(ctx, cmd, logger)
}
