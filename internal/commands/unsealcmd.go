package commands

import (
	"github.com/spf13/cobra"

	"github.com/encryption4all/goseal/internal/config"
	"github.com/encryption4all/goseal/internal/logic"
)

// NewUnsealCommand creates a new cobra command for the unseal subcommand.
// Without arguments it unseals every sealed file under the current
// directory.
func NewUnsealCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "unseal [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Unseal files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Unseal = true

			return preRun(cfg)(cmd, args)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
