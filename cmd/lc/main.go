package main

import (
	"os"

	"github.com/lc-tui/lc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
