/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for tsimtsum.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/tsimtsum/internal/version"
)

// Cmd is the version cobra command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for tsimtsum.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("full", false, "Include commit information")
}

func run(cmd *cobra.Command, args []string) error {
	if full, _ := cmd.Flags().GetBool("full"); full {
		fmt.Printf("tsimtsum %s\n", version.Full())
		return nil
	}
	fmt.Printf("tsimtsum %s\n", version.Get())
	return nil
}
