package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/encryption4all/goseal/pkg/seal"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "keygen",
		Aliases: []string{"gen"},
		Short:   "Generate a new combined key (cipher key and MAC key)",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key := random.GetRandomBytes(2 * seal.KeySize)

			fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

			return nil
		},
	}
}
