package main

import (
	"os"

	"github.com/smat-dev/jinni/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
