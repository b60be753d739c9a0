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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/exascience/elalign/internal"
	"github.com/exascience/elalign/utils"
)

// ProgramMessage is the first line printed when the elalign binary is
// called.
var ProgramMessage = fmt.Sprint(
	"\n", utils.ProgramName, " version ", utils.ProgramVersion,
	" compiled with ", runtime.Version(),
	" - see ", utils.ProgramURL, " for more information.\n",
)

func checkExist(parameter, filename string) error {
	if len(filename) == 0 {
		return fmt.Errorf("missing filename for command line parameter %v", parameter)
	}
	if filename[0] == '-' {
		return fmt.Errorf("missing filename before %v for command line parameter %v", filename, parameter)
	}
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if os.IsNotExist(err) {
		return fmt.Errorf("file %v does not exist for command line parameter %v", filename, parameter)
	} else if os.IsPermission(err) {
		return fmt.Errorf("no permission to read file %v for command line parameter %v", filename, parameter)
	} else {
		return fmt.Errorf("%v when trying to access file %v for command line parameter %v", err, filename, parameter)
	}
}

func checkCreate(parameter, filename string) error {
	if len(filename) == 0 {
		return fmt.Errorf("missing filename for command line parameter %v", parameter)
	}
	if filename == "/dev/stdout" {
		return nil
	}
	if filename[0] == '-' {
		return fmt.Errorf("missing filename before %v for command line parameter %v", filename, parameter)
	}
	if internal.FileExists(filename) {
		// Assume that the file has been written by previous elalign runs, and can be overwritten.
		return nil
	}
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err == nil {
		err = os.WriteFile(filename, nil, 0666)
	}
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("no permission to create file %v for command line parameter %v", filename, parameter)
		}
		return fmt.Errorf("%v when trying to create file %v for command line parameter %v", err, filename, parameter)
	}
	_ = os.Remove(filename)
	return nil
}

func timedRun(timed bool, msg string, f func() error) error {
	if timed {
		logger.Info(msg)
		start := time.Now()
		defer func() {
			logger.Info("Elapsed time", zap.Duration("elapsed", time.Since(start)))
		}()
	}
	return f()
}
