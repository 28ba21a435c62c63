package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/permkit/internal/build"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for permkit",
	Example: `  # Show version info
  permkit version

  # Plain output (for scripts)
  permkit version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion()
		} else {
			printPrettyVersion()
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion() {
	fmt.Printf("permkit %s\n", build.Version)
	fmt.Printf("commit: %s\n", build.Commit)
	fmt.Printf("built: %s\n", build.BuildDate)
	fmt.Printf("go: %s\n", runtime.Version())
	fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints formatted version information
func printPrettyVersion() {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("permkit %s\n", build.Version)
	faint.Printf("  commit:   %s\n", build.Commit)
	faint.Printf("  built:    %s\n", build.BuildDate)
	faint.Printf("  go:       %s\n", runtime.Version())
	faint.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
