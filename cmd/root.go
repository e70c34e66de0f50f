/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tsimtsum.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tsimtsum/cmd/build"
	"bennypowers.dev/tsimtsum/cmd/version"
	"bennypowers.dev/tsimtsum/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tsimtsum",
	Short: "Optimize and print style sheets",
	Long:  `tsimtsum rewrites parsed style sheets into minimal print-ready form and serializes them with original-to-generated span tracking.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetVerbose(true)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("prefix", "p", "", "Theme variable prefix")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")
	_ = viper.BindPFlag("prefix", rootCmd.PersistentFlags().Lookup("prefix"))

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
