// Package commands provides the command-line interface for the goseal tool.
//
// It implements commands for:
//   - sealing (streaming authenticated encryption)
//   - unsealing (streaming verification and decryption)
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/encryption4all/goseal/internal/config"
)

// preRun returns a PreRunE handler that binds flags into the configuration,
// resolves positional args and validates the result.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return fmt.Errorf("binding root flags: %w", err)
		}

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding command flags: %w", err)
		}

		if err := viper.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cfg.Validate()
	}
}
