// Package cmd implements the CLI commands for pagemark using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the pagemark command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagemark",
		Short: "pagemark — convert HTML pages into Markdown",
		Long: `pagemark extracts the main content of an HTML page into a structured
document tree and renders that tree as Markdown, JSON, or PDF.

Usage:
  pagemark convert [--input demo.html] [--output demo.md] [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
