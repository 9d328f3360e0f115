// Command stegecrypt encrypts files and hides them in images.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/idelchi/stegecrypt/internal/commands"
	"github.com/idelchi/stegecrypt/internal/errdefs"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	root := commands.NewRootCommand(version)
	root.SetArgs(commands.NormalizeArgs(os.Args[1:]))

	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(errdefs.ExitCode(err))
	}
}
