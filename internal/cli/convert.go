package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/schoolboyqueue/permkit/internal/config"
	"github.com/schoolboyqueue/permkit/internal/fileio"
	"github.com/schoolboyqueue/permkit/internal/markdown"
	"github.com/schoolboyqueue/permkit/internal/settings"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert markdown pattern lists to permission files",
	Long: `Convert markdown documents with command patterns to permission files.

Finds all documents matching the configured naming convention (default
gh-*.md) in the working directory. Each bullet line with a backtick-quoted
pattern ("* ` + "`Bash(npm run test:*)`" + `") contributes one allow entry;
other lines are ignored. A sibling .json permission file is written per
input. Files that fail to convert are reported and skipped.`,
	Example: `  # Convert all gh-*.md files in the current directory
  permkit convert`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(cfg.ConvertPattern)
	if err != nil {
		return fmt.Errorf("invalid convert pattern '%s': %w", cfg.ConvertPattern, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No %s files found in the current directory\n", cfg.ConvertPattern)
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Found %d markdown files to process\n", len(files))

	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	created := 0
	for _, mdPath := range files {
		outPath, count, err := convertFile(mdPath, cfg, isTTY)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error processing %s: %v\n", mdPath, err)
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Created %s with %d patterns\n", outPath, count)
		created++
	}

	color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Successfully created %d permission files\n", created)
	return nil
}

// convertFile converts one markdown document into a sibling permission file
// and returns the output path and the number of extracted patterns. In TTY
// mode a spinner runs on stderr while the file is processed.
func convertFile(mdPath string, cfg *config.Configuration, isTTY bool) (string, int, error) {
	if isTTY {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Writer = os.Stderr // Keep stdout free for document output elsewhere
		s.Suffix = " Converting " + mdPath
		s.Start()
		defer s.Stop()
	}

	patterns, err := markdown.ExtractFile(mdPath)
	if err != nil {
		return "", 0, err
	}

	doc := settings.FromPatterns(patterns)
	output, err := doc.Render(cfg.Indent, false)
	if err != nil {
		return "", 0, err
	}

	outPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + cfg.ConvertExt
	if _, err := fileio.WriteFileWithBackup(outPath, append(output, '\n'), false); err != nil {
		return "", 0, err
	}
	return outPath, len(patterns), nil
}
