package config_test

import (
	"strings"
	"testing"

	"github.com/encryption4all/goseal/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Key:        strings.Repeat("ab", 64),
		ChunkSize:  128 * 1024,
		Parallel:   4,
		SealSuffix: ".sealed",
		Files:      []string{"a.txt"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:   "valid with key",
			mutate: func(*config.Config) {},
		},
		{
			name: "valid with key file",
			mutate: func(c *config.Config) {
				c.Key = ""
				c.KeyFile = "key.txt"
			},
		},
		{
			name: "key and key file are exclusive",
			mutate: func(c *config.Config) {
				c.KeyFile = "key.txt"
			},
			wantErr: true,
		},
		{
			name: "missing key material",
			mutate: func(c *config.Config) {
				c.Key = ""
			},
			wantErr: true,
		},
		{
			name: "key too short",
			mutate: func(c *config.Config) {
				c.Key = strings.Repeat("ab", 32)
			},
			wantErr: true,
		},
		{
			name: "key not hex",
			mutate: func(c *config.Config) {
				c.Key = strings.Repeat("zz", 64)
			},
			wantErr: true,
		},
		{
			name: "zero chunk size",
			mutate: func(c *config.Config) {
				c.ChunkSize = 0
			},
			wantErr: true,
		},
		{
			name: "negative chunk size",
			mutate: func(c *config.Config) {
				c.ChunkSize = -1
			},
			wantErr: true,
		},
		{
			name: "zero parallelism",
			mutate: func(c *config.Config) {
				c.Parallel = 0
			},
			wantErr: true,
		},
		{
			name: "no files",
			mutate: func(c *config.Config) {
				c.Files = nil
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
