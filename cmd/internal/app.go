// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.NewRootCmd(getenv)
	return rootCmd.ExecuteContext(ctx)
}
