// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package passcode implements "strbuf passcode": deriving a stored PIN
// digest for the configuration file and checking PINs against it.
//
// PINs are read into locked memory (see lib/secret) and never appear
// in arguments, logs, or ordinary heap strings.
package passcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/config"
	libpasscode "github.com/bureau-foundation/stringref/lib/passcode"
	"github.com/bureau-foundation/stringref/lib/secret"
)

// pinBufferCapacity bounds the PIN buffer for verification. It is the
// largest passcode.max_length the configuration accepts, so a PIN over
// the configured limit is read in full and rejected rather than
// failing the read.
const pinBufferCapacity = 64

// IO carries the streams the passcode commands use.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command returns the "passcode" command group.
func Command(streams IO) *cli.Command {
	return &cli.Command{
		Name:    "passcode",
		Summary: "Derive and verify PIN digests",
		Description: `Derive and verify argon2id digests of a short PIN.

"hash" prints a passcode section for the configuration file. "verify"
checks a PIN against it in constant time and exits 1 on mismatch.

PINs are read from the terminal with echo disabled, or from standard
input when it is not a terminal.`,
		Subcommands: []*cli.Command{
			hashCommand(streams),
			verifyCommand(streams),
		},
	}
}

// hashResult is the passcode section printed by "passcode hash".
type hashResult struct {
	Digest    string `yaml:"digest" json:"digest" cbor:"digest"`
	Salt      string `yaml:"salt" json:"salt" cbor:"salt"`
	Time      uint32 `yaml:"time" json:"time" cbor:"time"`
	MemoryKiB uint32 `yaml:"memory_kib" json:"memory_kib" cbor:"memory_kib"`
	Threads   uint8  `yaml:"threads" json:"threads" cbor:"threads"`
}

func hashCommand(streams IO) *cli.Command {
	var (
		configFlag cli.ConfigFlag
		output     cli.Output
	)

	return &cli.Command{
		Name:    "hash",
		Summary: "Derive a digest for a new PIN",
		Usage:   "strbuf passcode hash [flags]",
		Examples: []cli.Example{
			{Description: "Append a passcode section to the config", Command: "strbuf passcode hash >> strbuf.yaml"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			configFlag.AddFlags(flagSet)
			output.AddFlags(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q: the PIN is read from the terminal or stdin", args[0])
			}
			cfg, err := configFlag.Load()
			if err != nil {
				return err
			}

			pin, err := readNewPIN(streams, cfg.Passcode.MaxLength)
			if err != nil {
				return err
			}
			defer pin.Close()

			params := paramsFrom(cfg)
			digest, salt, err := libpasscode.Hash(pin, params)
			if err != nil {
				return err
			}
			logger.Info("passcode digest derived",
				"time", params.Time,
				"memory_kib", params.MemoryKiB,
				"threads", params.Threads,
			)

			result := hashResult{
				Digest:    digest,
				Salt:      salt,
				Time:      params.Time,
				MemoryKiB: params.MemoryKiB,
				Threads:   params.Threads,
			}
			if done, err := output.Emit(streams.Stdout, result); done {
				return err
			}

			encoder := yaml.NewEncoder(streams.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(map[string]hashResult{"passcode": result}); err != nil {
				return err
			}
			return encoder.Close()
		},
	}
}

// readNewPIN reads a PIN, asking twice when a person is typing it.
func readNewPIN(streams IO, maxLength int) (*secret.Buffer, error) {
	pin, err := cli.ReadSecret(streams.Stdin, streams.Stderr, "New PIN: ", maxLength)
	if err != nil {
		return nil, err
	}
	if !cli.IsTerminal(streams.Stdin) {
		return pin, nil
	}

	confirmation, err := cli.ReadSecret(streams.Stdin, streams.Stderr, "Repeat PIN: ", maxLength)
	if err != nil {
		pin.Close()
		return nil, err
	}
	defer confirmation.Close()

	if !pin.Equal(confirmation) {
		pin.Close()
		return nil, errors.New("PINs do not match")
	}
	return pin, nil
}

// verifyResult is the machine-readable output of "passcode verify".
type verifyResult struct {
	Accepted bool `json:"accepted" cbor:"accepted"`
}

func verifyCommand(streams IO) *cli.Command {
	var (
		configFlag cli.ConfigFlag
		output     cli.Output
	)

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a PIN against the configured digest",
		Description: `Check a PIN against passcode.digest in constant time.

Exits 0 when the PIN is accepted and 1 when it is rejected.`,
		Usage: "strbuf passcode verify [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			configFlag.AddFlags(flagSet)
			output.AddFlags(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q: the PIN is read from the terminal or stdin", args[0])
			}
			cfg, err := configFlag.Load()
			if err != nil {
				return err
			}

			if !cfg.HasPasscode() {
				return fmt.Errorf("no passcode configured; add the output of 'strbuf passcode hash' to the config file")
			}
			verifier, err := libpasscode.NewVerifier(cfg.Passcode.Digest, cfg.Passcode.Salt,
				paramsFrom(cfg), cfg.Passcode.MaxLength)
			if err != nil {
				return err
			}

			pin, err := cli.ReadSecret(streams.Stdin, streams.Stderr, "PIN: ", pinBufferCapacity)
			if err != nil {
				return err
			}
			defer pin.Close()

			accepted := verifier.Verify(pin)
			if accepted {
				logger.Info("passcode accepted")
			} else {
				logger.Warn("passcode rejected")
			}

			if done, err := output.Emit(streams.Stdout, verifyResult{Accepted: accepted}); done {
				if err != nil {
					return err
				}
			} else if accepted {
				fmt.Fprintln(streams.Stdout, "passcode accepted")
			} else {
				fmt.Fprintln(streams.Stdout, "passcode rejected")
			}

			if !accepted {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func paramsFrom(cfg *config.Config) libpasscode.Params {
	return libpasscode.Params{
		Time:      cfg.Passcode.Time,
		MemoryKiB: cfg.Passcode.MemoryKiB,
		Threads:   cfg.Passcode.Threads,
	}
}
