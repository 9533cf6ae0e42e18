// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/config"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

// bufferFlags are the flags shared by every buffer command.
type bufferFlags struct {
	capacity int
	config   cli.ConfigFlag
	output   cli.Output
}

func (f *bufferFlags) addFlags(flagSet *pflag.FlagSet) {
	flagSet.IntVarP(&f.capacity, "capacity", "n", 0, "buffer capacity in bytes (default: buffers.default_capacity)")
	f.config.AddFlags(flagSet)
	f.output.AddFlags(flagSet)
}

// allocate returns an empty buffer of the requested capacity.
func (f *bufferFlags) allocate() (stringref.Ref, error) {
	cfg, err := f.config.Load()
	if err != nil {
		return stringref.Ref{}, err
	}
	capacity, err := resolveCapacity(f.capacity, cfg)
	if err != nil {
		return stringref.Ref{}, err
	}
	return stringref.NewRef(make([]byte, capacity+1)), nil
}

func resolveCapacity(requested int, cfg *config.Config) (int, error) {
	if requested == 0 {
		return cfg.Buffers.DefaultCapacity, nil
	}
	if requested < 0 || requested > cfg.Buffers.MaxCapacity {
		return 0, fmt.Errorf("--capacity must be between 1 and %d, got %d", cfg.Buffers.MaxCapacity, requested)
	}
	return requested, nil
}
