// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint implements "strbuf fingerprint", which prints a
// keyed BLAKE3 fingerprint of a value so it can be recognised in logs
// without being revealed.
package fingerprint

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/config"
	libfingerprint "github.com/bureau-foundation/stringref/lib/fingerprint"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

// maxSecretLength bounds values read with --secret.
const maxSecretLength = 256

// result is the machine-readable output.
type result struct {
	Digest    string `json:"digest" cbor:"digest"`
	Short     string `json:"short" cbor:"short"`
	Ephemeral bool   `json:"ephemeral" cbor:"ephemeral"`
}

// Command returns the "fingerprint" command.
func Command(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	var (
		configFlag cli.ConfigFlag
		output     cli.Output
		keyHex     string
		fromSecret bool
		short      bool
	)

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print a keyed fingerprint of a value",
		Description: `Print the keyed BLAKE3 fingerprint of TEXT, or of a secret read
from the terminal or stdin with --secret.

The key comes from --key, then fingerprint.key in the configuration.
Without either a random key is used, and the fingerprint is only
comparable with others printed by the same invocation.`,
		Usage: "strbuf fingerprint [flags] [TEXT]",
		Examples: []cli.Example{
			{Description: "Fingerprint a PIN without putting it on the command line", Command: "strbuf fingerprint --secret"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			configFlag.AddFlags(flagSet)
			output.AddFlags(flagSet)
			flagSet.StringVar(&keyHex, "key", "", "hex-encoded 32-byte key (default: fingerprint.key)")
			flagSet.BoolVar(&fromSecret, "secret", false, "read the value from the terminal or stdin into locked memory")
			flagSet.BoolVar(&short, "short", false, "print only the 16-character prefix")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := configFlag.Load()
			if err != nil {
				return err
			}
			key, ephemeral, err := resolveKey(keyHex, cfg)
			if err != nil {
				return err
			}
			if ephemeral {
				logger.Warn("no fingerprint key configured; using a random key")
			}
			fingerprinter := libfingerprint.New(key)

			var digest libfingerprint.Digest
			switch {
			case fromSecret && len(args) > 0:
				return fmt.Errorf("--secret and TEXT are mutually exclusive")
			case fromSecret:
				value, err := cli.ReadSecret(stdin, stderr, "Value: ", maxSecretLength)
				if err != nil {
					return err
				}
				digest = fingerprinter.Sum(value.Ref())
				value.Close()
			case len(args) == 1:
				var value stringref.String256
				if value.Copy(args[0]) {
					return fmt.Errorf("TEXT exceeds %d bytes", value.Capacity())
				}
				digest = fingerprinter.Sum(value.Ref())
			default:
				return fmt.Errorf("exactly one TEXT argument or --secret required")
			}

			if done, err := output.Emit(stdout, result{
				Digest:    digest.String(),
				Short:     digest.Short(),
				Ephemeral: ephemeral,
			}); done {
				return err
			}
			if short {
				fmt.Fprintln(stdout, digest.Short())
			} else {
				fmt.Fprintln(stdout, digest.String())
			}
			return nil
		},
	}
}

// resolveKey picks the fingerprint key. Reports ephemeral when a
// random key had to be generated.
func resolveKey(keyHex string, cfg *config.Config) (libfingerprint.Key, bool, error) {
	if keyHex == "" {
		keyHex = cfg.Fingerprint.Key
	}
	if keyHex != "" {
		key, err := libfingerprint.ParseKey(keyHex)
		return key, false, err
	}
	key, err := libfingerprint.NewKey()
	return key, true, err
}
