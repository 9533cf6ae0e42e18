// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete strbuf command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/buffer"
	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	fingerprintcmd "github.com/bureau-foundation/stringref/cmd/strbuf/fingerprint"
	"github.com/bureau-foundation/stringref/cmd/strbuf/keygen"
	passcodecmd "github.com/bureau-foundation/stringref/cmd/strbuf/passcode"
	"github.com/bureau-foundation/stringref/lib/version"
)

// Streams are the process streams the commands read and write.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Root builds and returns the strbuf command tree.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "strbuf",
		Description: `strbuf: fixed-capacity string buffers from the command line.

Format, edit, and inspect bounded buffers exactly as the stringref
library does: content never exceeds capacity, the buffer is always
terminated, and overflow is reported rather than fatal. Also derives
and verifies PIN digests held in locked memory, and seals recorded
edit sessions with age.`,
		HelpOutput: streams.Stderr,
		Subcommands: []*cli.Command{
			buffer.FormatCommand(streams.Stdout),
			buffer.EditCommand(streams.Stdout),
			buffer.InspectCommand(streams.Stdout),
			buffer.ReplayCommand(streams.Stdin, streams.Stdout),
			keygen.Command(streams.Stdout),
			passcodecmd.Command(passcodecmd.IO{
				Stdin:  streams.Stdin,
				Stdout: streams.Stdout,
				Stderr: streams.Stderr,
			}),
			fingerprintcmd.Command(streams.Stdin, streams.Stdout, streams.Stderr),
			versionCommand(streams.Stdout),
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	var (
		output cli.Output
		full   bool
		digest bool
	)

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			output.AddFlags(flagSet)
			flagSet.BoolVar(&full, "full", false, "include Go version and platform")
			flagSet.BoolVar(&digest, "digest", false, "include the BLAKE3 digest of this binary")
			return flagSet
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			report := version.Current()
			if digest {
				sum, path, err := version.ComputeSelfDigest()
				if err != nil {
					return err
				}
				report.Binary = path
				report.Digest = sum
				logger.Debug("binary hashed", "path", path)
			}

			if done, err := output.Emit(stdout, report); done {
				return err
			}

			if full {
				fmt.Fprintf(stdout, "strbuf %s\n", version.Full())
			} else {
				fmt.Fprintf(stdout, "strbuf %s\n", version.Info())
			}
			if digest {
				fmt.Fprintf(stdout, "  Binary: %s\n  BLAKE3: %s\n", report.Binary, report.Digest)
			}
			return nil
		},
	}
}
