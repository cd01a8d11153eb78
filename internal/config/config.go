// Package config holds the runtime configuration of the goseal tool.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is populated from flags and environment by the commands package.
type Config struct {
	// Key is the hex-encoded 64-byte key: 32 bytes cipher key followed by
	// 32 bytes MAC key.
	Key string `label:"key"      mapstructure:"key"      validate:"omitempty,len=128,hexadecimal"`

	// KeyFile points to a file holding the hex-encoded key.
	KeyFile string `label:"key-file" mapstructure:"key-file" validate:"omitempty,exclusive=Key"`

	// ChunkSize is the re-buffering granularity of the sealing transform.
	ChunkSize int `label:"chunk-size" mapstructure:"chunk-size" validate:"gt=0"`

	// Parallel bounds the number of files processed concurrently.
	Parallel int `label:"parallel" mapstructure:"parallel" validate:"gte=1"`

	// SealSuffix is appended to sealed files; UnsealSuffix is appended after
	// stripping the seal suffix when unsealing.
	SealSuffix   string `mapstructure:"seal-ext"`
	UnsealSuffix string `mapstructure:"unseal-ext"`

	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`

	// Delete removes the source file after successful processing.
	Delete bool `mapstructure:"delete"`

	// PreserveTimestamps carries the source modification time to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Stats prints a processing summary at the end of the run.
	Stats bool `mapstructure:"stats"`

	// Unseal selects decryption; set by the unseal command.
	Unseal bool

	// Files are the positional arguments.
	Files []string `label:"files" validate:"min=1"`
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key == "" && c.KeyFile == "" {
		return errors.New("either --key or --key-file must be provided")
	}

	return nil
}
