// Command adcheck highlights regulated advertising keywords in documents.
package main

import (
	"os"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetRuntimeFactory(newRuntime)
	os.Exit(cli.Execute())
}
