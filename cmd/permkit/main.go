// permkit - Claude Code permission settings tooling
// Source: https://github.com/schoolboyqueue/permkit

package main

import (
	"os"

	"github.com/schoolboyqueue/permkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
