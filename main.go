package main

import (
	"os"

	"github.com/encryption4all/goseal/internal/commands"
	"github.com/encryption4all/goseal/internal/config"
)

// version is set at build time.
var version = "dev" //nolint:gochecknoglobals

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		os.Exit(1)
	}
}
