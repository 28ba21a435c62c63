package cli

import (
	"github.com/spf13/cobra"

	"github.com/schoolboyqueue/permkit/internal/config"
)

// loadConfig loads the tool configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
