// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package commands contains all CLI command definitions.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest portal dataset records into bilingual metadata documents",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	registerGenerateCmd(rootCmd, getenv, &verbose)
	registerValidateCmd(rootCmd, &verbose)
	registerVersionCmd(rootCmd)

	return rootCmd
}

// newLogger builds the console logger shared by all commands.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
