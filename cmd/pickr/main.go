// Command pickr indexes a local directory tree and suggests the files
// most relevant to a context.
package main

import (
	"os"

	"github.com/harken-labs/pickr-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
