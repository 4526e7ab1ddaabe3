package main

import (
	"os"

	"github.com/imgseal/imgseal/internal/commands"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
