// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/version"
)

func registerVersionCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Info())
			return nil
		},
	}
	parent.AddCommand(cmd)
}
