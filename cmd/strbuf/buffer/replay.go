// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/codec"
	"github.com/bureau-foundation/stringref/lib/sealed"
	"github.com/bureau-foundation/stringref/lib/transcript"
)

// ReplayCommand returns the "replay" command.
func ReplayCommand(stdin io.Reader, stdout io.Writer) *cli.Command {
	var (
		configFlag   cli.ConfigFlag
		output       cli.Output
		identityPath string
	)

	return &cli.Command{
		Name:    "replay",
		Summary: "Print a transcript recorded by edit --record",
		Description: `Print the steps of a transcript written by "strbuf edit --record".

A sealed (.age) transcript is opened with --identity, or with
identity.txt under paths.state when --identity is not given. A PATH of
"-" reads the CBOR output of "strbuf edit --cbor" from stdin instead.`,
		Usage: "strbuf replay [flags] PATH",
		Examples: []cli.Example{
			{Description: "Replay a sealed session", Command: "strbuf replay session.cbor.zst.age"},
			{Description: "Tabulate edit output", Command: "strbuf edit --cbor -n 8 cat:Hello cat:World | strbuf replay -"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("replay", pflag.ContinueOnError)
			configFlag.AddFlags(flagSet)
			output.AddFlags(flagSet)
			flagSet.StringVar(&identityPath, "identity", "", "age private key file for a sealed transcript (default: identity.txt under paths.state)")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one PATH argument required")
			}
			path := args[0]

			var (
				steps []transcript.Step
				err   error
			)
			if path == "-" {
				steps, err = decodeSteps(stdin)
			} else {
				steps, err = readTranscript(path, identityPath, configFlag)
			}
			if err != nil {
				return err
			}
			logger.Debug("transcript read",
				"path", path,
				"compression", transcript.CompressionFor(path).String(),
				"sealed", sealed.IsSealed(path),
				"steps", len(steps),
			)

			if done, err := output.Emit(stdout, steps); done {
				return err
			}

			writer := tabwriter.NewWriter(stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "#\tOP\tOVERFLOW\tLEN/CAP\tCONTENT")
			for index, step := range steps {
				fmt.Fprintf(writer, "%d\t%s\t%t\t%d/%d\t%q\n",
					index+1, step.Op, step.Overflow, step.Length, step.Capacity, step.Content)
			}
			return writer.Flush()
		},
	}
}

// readTranscript reads the transcript at path, opening it with the
// identity at identityPath or the configured default when it is sealed.
func readTranscript(path, identityPath string, configFlag cli.ConfigFlag) ([]transcript.Step, error) {
	var options transcript.Options
	if sealed.IsSealed(path) {
		if identityPath == "" {
			cfg, err := configFlag.Load()
			if err != nil {
				return nil, err
			}
			identityPath = cfg.IdentityPath()
		}
		identity, err := sealed.ReadPrivateKey(identityPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s needs an identity (--identity or strbuf keygen): %w", path, err)
		}
		defer identity.Close()
		options.Identity = identity
	}
	return transcript.Read(path, options)
}

// decodeSteps decodes the single CBOR array "strbuf edit --cbor" emits.
func decodeSteps(reader io.Reader) ([]transcript.Step, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	var steps []transcript.Step
	if err := codec.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("decoding edit output: %w", err)
	}
	return steps, nil
}
