// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the strbuf binary.
//
// A [Command] is a node in a tree: it either dispatches to
// Subcommands by the first positional argument or parses its pflag
// flag set and calls Run. Unknown commands and flags get a "did you
// mean" suggestion chosen by Levenshtein distance.
//
// Supporting pieces:
//
//   - [ExitError] -- a non-zero exit without an extra error line
//   - [NewCommandLogger] -- slog text on a terminal, JSON otherwise
//   - [Output] -- --json and --cbor machine output
//   - [LoadConfig] -- --config, STRBUF_CONFIG, or built-in defaults
//   - [ReadSecret] -- reads a PIN into locked memory without echo
package cli
