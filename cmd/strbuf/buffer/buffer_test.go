// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/config"
)

// execute runs command with args against built-in defaults and
// returns what it wrote to stdout.
func execute(t *testing.T, build func(stdout *bytes.Buffer) *cli.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	var stdout bytes.Buffer
	err := build(&stdout).Execute(context.Background(), args)
	return stdout.String(), err
}

func formatCommand(stdout *bytes.Buffer) *cli.Command  { return FormatCommand(stdout) }
func editCommand(stdout *bytes.Buffer) *cli.Command    { return EditCommand(stdout) }
func inspectCommand(stdout *bytes.Buffer) *cli.Command { return InspectCommand(stdout) }
func replayCommand(stdout *bytes.Buffer) *cli.Command {
	return ReplayCommand(strings.NewReader(""), stdout)
}

// replayFrom builds a replay command whose stdin holds input.
func replayFrom(input []byte) func(stdout *bytes.Buffer) *cli.Command {
	return func(stdout *bytes.Buffer) *cli.Command {
		return ReplayCommand(bytes.NewReader(input), stdout)
	}
}

func TestResolveCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.Buffers.DefaultCapacity = 32
	cfg.Buffers.MaxCapacity = 128

	tests := []struct {
		requested int
		want      int
		wantErr   bool
	}{
		{0, 32, false},
		{1, 1, false},
		{128, 128, false},
		{129, 0, true},
		{-1, 0, true},
	}
	for _, test := range tests {
		got, err := resolveCapacity(test.requested, cfg)
		if (err != nil) != test.wantErr || got != test.want {
			t.Errorf("resolveCapacity(%d) = (%d, %v), want (%d, error=%v)",
				test.requested, got, err, test.want, test.wantErr)
		}
	}
}
