package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:                   "audit [command]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Audit runs content checks over local files and web pages.",
	Long: `Audit runs the same spelling, grammar, SEO and readability checks as the
API server over local files and web pages, and writes a JSON report.`,
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
