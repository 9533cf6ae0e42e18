// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keygen implements "strbuf keygen", which creates the age
// keypairs used to seal transcripts.
package keygen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/sealed"
)

type result struct {
	PublicKey    string `json:"public_key" cbor:"public_key"`
	IdentityPath string `json:"identity_path" cbor:"identity_path"`
}

// Command returns the "keygen" command.
func Command(stdout io.Writer) *cli.Command {
	var (
		configFlag cli.ConfigFlag
		output     cli.Output
		outputPath string
		force      bool
	)

	return &cli.Command{
		Name:    "keygen",
		Summary: "Create an age keypair for sealed transcripts",
		Description: `Generate an age x25519 keypair. The private key is written with
mode 0600 to --output, or to identity.txt under paths.state when
--output is not given; the public key is printed for use with
"strbuf edit --recipient". "strbuf replay" reads the same default
file to open sealed transcripts.`,
		Usage: "strbuf keygen [flags]",
		Examples: []cli.Example{
			{Description: "Create the default identity", Command: "strbuf keygen"},
			{Description: "Create a keypair elsewhere", Command: "strbuf keygen --output ./transcripts.key"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			configFlag.AddFlags(flagSet)
			output.AddFlags(flagSet)
			flagSet.StringVarP(&outputPath, "output", "o", "", "file to write the private key to (default: identity.txt under paths.state)")
			flagSet.BoolVar(&force, "force", false, "overwrite an existing private key file")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			path := outputPath
			if path == "" {
				cfg, err := configFlag.Load()
				if err != nil {
					return err
				}
				if err := cfg.EnsurePaths(); err != nil {
					return err
				}
				path = cfg.IdentityPath()
			}

			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			defer keypair.Close()

			if err := writeIdentity(path, keypair, force); err != nil {
				return err
			}
			logger.Info("identity written", "path", path)

			if done, err := output.Emit(stdout, result{PublicKey: keypair.PublicKey, IdentityPath: path}); done {
				return err
			}
			fmt.Fprintln(stdout, keypair.PublicKey)
			return nil
		},
	}
}

// writeIdentity writes the private key alone on one line, the form
// [sealed.ReadPrivateKey] accepts.
func writeIdentity(path string, keypair *sealed.Keypair, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		return fmt.Errorf("creating identity file: %w", err)
	}

	if _, err := file.Write(keypair.PrivateKey.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("writing identity file: %w", err)
	}
	if _, err := file.Write([]byte{'\n'}); err != nil {
		file.Close()
		return fmt.Errorf("writing identity file: %w", err)
	}
	return file.Close()
}
