// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/lib/config"
	"github.com/bureau-foundation/stringref/lib/testutil"
)

func TestLoadConfig_DefaultsWithoutPath(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Buffers.DefaultCapacity != config.Default().Buffers.DefaultCapacity {
		t.Errorf("default_capacity = %d", cfg.Buffers.DefaultCapacity)
	}
}

func TestLoadConfig_EnvironmentVariable(t *testing.T) {
	path := testutil.WriteFile(t, "strbuf.yaml", "buffers:\n  default_capacity: 12\n")
	t.Setenv(config.EnvironmentVariable, path)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Buffers.DefaultCapacity != 12 {
		t.Errorf("default_capacity = %d, want 12", cfg.Buffers.DefaultCapacity)
	}
}

func TestConfigFlag_OverridesEnvironment(t *testing.T) {
	fromEnvironment := testutil.WriteFile(t, "env.yaml", "buffers:\n  default_capacity: 12\n")
	fromFlag := testutil.WriteFile(t, "flag.yaml", "buffers:\n  default_capacity: 24\n")
	t.Setenv(config.EnvironmentVariable, fromEnvironment)

	var flag ConfigFlag
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flag.AddFlags(flagSet)
	if err := flagSet.Parse([]string{"--config", fromFlag}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := flag.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Buffers.DefaultCapacity != 24 {
		t.Errorf("default_capacity = %d, want 24 from --config", cfg.Buffers.DefaultCapacity)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := testutil.WriteFile(t, "strbuf.yaml", "environment: nowhere\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error")
	}

	if _, err := LoadConfig(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}
