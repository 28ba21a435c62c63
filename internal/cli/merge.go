package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/permkit/internal/fileio"
	"github.com/schoolboyqueue/permkit/internal/settings"
)

var (
	mergeOutput   string
	mergeIndent   int
	mergeCompact  bool
	mergeNoBackup bool
	mergeForce    bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <files...>",
	Short: "Merge Claude settings files by combining their permission lists",
	Long: `Merge multiple Claude settings.json files into one document.

The permissions.allow and permissions.deny lists of all inputs are combined
and deduplicated, preserving first-occurrence order. All other fields are
taken from the first file. Glob patterns in file arguments are expanded
against the working directory.

When writing over an existing output file a numbered .bak copy is created
first, unless --no-backup (or --force) is given.`,
	Example: `  permkit merge settings1.json settings2.json -o merged.json
  permkit merge base.json gh-*.json -o complete-settings.json
  permkit merge *.json --compact`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Output file path (default: print to stdout)")
	mergeCmd.Flags().IntVar(&mergeIndent, "indent", 2, "JSON indentation spaces")
	mergeCmd.Flags().BoolVar(&mergeCompact, "compact", false, "Output compact JSON without indentation")
	mergeCmd.Flags().BoolVar(&mergeNoBackup, "no-backup", false, "Do not create *.bak backup when output file exists")
	mergeCmd.Flags().BoolVarP(&mergeForce, "force", "f", false, "Alias for --no-backup")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	indent := cfg.Indent
	if cmd.Flags().Changed("indent") {
		indent = mergeIndent
	}

	files, err := resolveInputFiles(cmd, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Merging %d files...\n", len(files))

	docs := make([]*settings.Document, 0, len(files))
	for _, path := range files {
		doc, err := settings.LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	merged, err := settings.Merge(docs)
	if err != nil {
		return err
	}

	output, err := merged.Render(indent, mergeCompact)
	if err != nil {
		return err
	}

	if mergeOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	}

	backup := cfg.Backup && !mergeNoBackup && !mergeForce
	backupPath, err := fileio.WriteFileWithBackup(mergeOutput, append(output, '\n'), backup)
	if err != nil {
		return err
	}
	if backupPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Created backup '%s'\n", backupPath)
	}
	color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Successfully wrote merged settings to '%s'\n", mergeOutput)
	return nil
}

// resolveInputFiles expands glob patterns in the file arguments against the
// working directory and removes duplicate paths, keeping first occurrence.
// Patterns that match nothing print a warning; literal paths pass through
// untouched (a missing literal path fails later, at load time, with the
// file's identity).
func resolveInputFiles(cmd *cobra.Command, args []string) ([]string, error) {
	var expanded []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			expanded = append(expanded, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", arg, err)
		}
		if len(matches) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: No files match pattern '%s'\n", arg)
		}
		expanded = append(expanded, matches...)
	}

	files := settings.DedupeStrings(expanded)
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to merge")
	}
	return files, nil
}
