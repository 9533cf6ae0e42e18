// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// strbuf drives fixed-capacity string buffers from the command line:
// formatting, editing, and inspecting them, and deriving and checking
// PIN digests held in locked memory.
//
// Run "strbuf --help" for the command list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/stringref/cmd/strbuf/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like passcode verify)
		// return an error carrying the desired exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.Root(commands.Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	return root.Execute(ctx, os.Args[1:])
}
