// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// awasuconf prints an Awasu configuration file the way the ini package
// reads it, with comments dropped and section and key names folded.
//
// Usage:
//
//	awasuconf [--log DEST] PATH
//
// DEST uses the extlog syntax ("+path" appends, "path" truncates) and
// defaults to $AWASUTOOLS_LOG.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/awasutools/envvar"
	"github.com/yourbase/awasutools/extlog"
	"github.com/yourbase/awasutools/ini"
	"zombiezen.com/go/log"
)

func main() {
	logger := extlog.Open(envvar.LogDestination())
	log.SetDefault(logger)
	cmd := newRootCommand(logger)
	err := cmd.Execute()
	logger.Close()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "awasuconf:", err)
		}
		os.Exit(1)
	}
}

// newRootCommand builds the command. Messages go to logger unless --log
// names another destination.
func newRootCommand(logger *extlog.Logger) *cobra.Command {
	var logDest string
	rootCmd := &cobra.Command{
		Use:           "awasuconf [--log DEST] PATH",
		Short:         "Dump an Awasu configuration file",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			l := logger
			if cmd.Flags().Changed("log") {
				l = extlog.Open(logDest)
				defer l.Close()
			}
			return dump(cmd.Context(), cmd.OutOrStdout(), l, args[0])
		},
	}
	rootCmd.Flags().StringVar(&logDest, "log", envvar.LogDestination(), "Log destination (\"+path\" to append)")
	return rootCmd
}

func dump(ctx context.Context, w io.Writer, logger *extlog.Logger, path string) error {
	f, err := ini.Open(path)
	if err != nil {
		logger.Log(ctx, log.Entry{Level: log.Error, Msg: err.Error()})
		return err
	}
	logger.Printf("Loaded %s: %d section(s)", f.Filename(), len(f.Sections()))
	return f.Dump(w)
}
