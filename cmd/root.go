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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/exascience/elalign/utils"
)

var (
	verbose bool

	// logger is replaced by a production logger once a command runs.
	logger      = zap.NewNop()
	loggerReady bool
)

var rootCmd = &cobra.Command{
	Use:     utils.ProgramName,
	Short:   "Concurrent SAM chunking for assembly polishing",
	Version: utils.ProgramVersion,
	Long: `elalign maps reads against the contigs of an assembly, and turns the
sorted alignments into gapped pairwise alignments, one chunk per contig,
for use by a consensus step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger, loggerReady = l, true
		logger.Debug("Command line", zap.Strings("args", os.Args))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(alignCmd, chunkCmd, contigsCmd)
}

// Execute runs the command selected on the command line.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if loggerReady {
			logger.Error("elalign failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	_ = logger.Sync()
	return err
}
