package main

import (
	"os"

	"github.com/iac-reconciler/state-refactor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
