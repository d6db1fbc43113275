package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is the current similc version (overridden by ldflags).
	Version = "0.4.0"
	// Build can be set via ldflags at compile time.
	Build = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion() {
	fmt.Printf("similc version %s (%s)\n", Version, Build)
}
