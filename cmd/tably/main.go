package main

import (
	"os"

	tably "github.com/edouard-claude/tably"
	"github.com/edouard-claude/tably/internal/cli"
	"github.com/edouard-claude/tably/internal/preset"
)

func main() {
	fs := tably.EmbeddedPresets
	preset.EmbeddedFS = &fs
	exitCode := cli.Run(os.Args)
	os.Exit(exitCode)
}
