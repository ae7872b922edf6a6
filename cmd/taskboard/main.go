// Command taskboard is a terminal client for a task board API.
package main

import (
	"os"

	"github.com/Iron-Ham/taskboard/internal/cmd"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
