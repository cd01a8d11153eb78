package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/encryption4all/goseal/internal/config"
	"github.com/encryption4all/goseal/pkg/seal"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "goseal [flags] command [flags]"
	root.Short = "Streaming authenticated file encryption"
	root.Long = `Seals files under AES-CTR with a trailing keyed digest, streaming chunk by
chunk so arbitrarily large files never need to fit in memory. Unsealing
verifies the digest before the output is moved into place.`

	root.PersistentFlags().StringP("key", "k", "", "Combined key (64 bytes, hex-encoded: cipher key then MAC key)")
	root.PersistentFlags().
		StringP("key-file", "f", "", "Path to a file with the combined key (64 bytes, hex-encoded)")
	root.PersistentFlags().Int("chunk-size", seal.DefaultChunkSize, "Re-buffering chunk size in bytes")
	root.PersistentFlags().
		IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolP("delete", "d", false, "Delete the original file after successful processing")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Carry source modification times to outputs")
	root.PersistentFlags().Bool("stats", false, "Print a processing summary")
	root.PersistentFlags().String("seal-ext", ".sealed", "Suffix to append to sealed files")
	root.PersistentFlags().
		String("unseal-ext", "", "Suffix to append to unsealed files, after stripping the sealed suffix")

	root.AddCommand(NewSealCommand(cfg), NewUnsealCommand(cfg), NewKeygenCommand())

	return root
}
