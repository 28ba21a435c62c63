// permkit - Claude Code permission settings tooling
// Source: https://github.com/schoolboyqueue/permkit

// Package cli provides Cobra-based CLI commands for the permkit tool.
// It defines the merge command (combine several settings.json permission
// files into one), the convert command (turn markdown pattern lists into
// permission files), and the version command.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "permkit",
	Short: "Claude Code permission settings tooling",
	Long: `permkit - Claude Code permission settings tooling

Merge multiple .claude settings.json permission files into one, or convert
markdown documents with backtick-quoted command patterns into permission
files.

Source: https://github.com/schoolboyqueue/permkit`,
	Example: `  # Merge settings files into one
  permkit merge settings1.json settings2.json -o merged.json

  # Merge with glob patterns, print to stdout
  permkit merge base.json gh-*.json

  # Convert all gh-*.md documents in the current directory
  permkit convert`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".permkit.json", "Path to config file")
}
