package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "json-gpo",
	Short: "Convert Windows policy templates to JSON",
	Long: `json-gpo converts Windows policy template trees (ADMX/ADML) into
language-specific JSON documents.

A run scans the source tree for definition files, resolves categories and
policies across namespaces, and projects the result once per requested
language. Broken input is reported and worked around; only an empty source
tree fails the run.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
