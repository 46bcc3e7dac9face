package main

import (
	"os"

	"github.com/TFMV/orbitgraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
