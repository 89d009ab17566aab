package main

import (
	"fmt"
	"os"

	"github.com/mmcdole/anispin/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorMessage(err))
		os.Exit(1)
	}
}
