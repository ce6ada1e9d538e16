// Command spanview is a terminal profile viewer built on spanscope: it
// loads one or more trace files, aligns them onto a shared timeline, and
// drives an interactive bubbletea UI or a one-shot export.
package main

import (
	"fmt"
	"os"

	"github.com/dicklesworthstone/spanscope/cmd/spanview/internal/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
