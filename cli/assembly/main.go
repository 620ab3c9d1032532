// Package main is the CLI command itself.
package main

import (
	"os"

	"github.com/partkit/assembly/cli"
	"github.com/partkit/assembly/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("assembly").Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
