// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/lib/config"
)

// ConfigFlag holds the --config flag shared by commands that read
// configuration.
type ConfigFlag struct {
	Path string
}

// AddFlags registers --config on flagSet.
func (f *ConfigFlag) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Path, "config", "", "configuration file (default: $"+config.EnvironmentVariable+")")
}

// Load resolves the configuration for a command. See [LoadConfig].
func (f *ConfigFlag) Load() (*config.Config, error) {
	return LoadConfig(f.Path)
}

// LoadConfig loads the file named by path, or by STRBUF_CONFIG when
// path is empty. With neither set it returns the built-in defaults:
// commands that need configured values (a passcode digest) check for
// them explicitly. The result is validated.
func LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
