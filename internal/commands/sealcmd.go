package commands

import (
	"github.com/spf13/cobra"

	"github.com/encryption4all/goseal/internal/config"
	"github.com/encryption4all/goseal/internal/logic"
)

// NewSealCommand creates a new cobra command for the seal subcommand.
func NewSealCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "seal [flags] [paths...]",
		Aliases: []string{"enc"},
		Short:   "Seal files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
