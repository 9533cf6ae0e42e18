// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/bureau-foundation/stringref/lib/secret"
)

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// IsTerminal reports whether input is an interactive terminal.
func IsTerminal(input io.Reader) bool {
	file, ok := input.(fileDescriptor)
	return ok && term.IsTerminal(int(file.Fd()))
}

// writesToTerminal reports whether output is an interactive terminal.
func writesToTerminal(output io.Writer) bool {
	file, ok := output.(fileDescriptor)
	return ok && term.IsTerminal(int(file.Fd()))
}

// ReadSecret reads a secret of at most capacity bytes into locked
// memory. When input is a terminal the prompt is written to
// promptOutput and echo is disabled while the user types. Otherwise
// the whole of input is read and surrounding whitespace trimmed, which
// is how scripts pipe a PIN in.
//
// The returned buffer must be closed by the caller.
func ReadSecret(input io.Reader, promptOutput io.Writer, prompt string, capacity int) (*secret.Buffer, error) {
	if !IsTerminal(input) {
		return secret.ReadTrimmed(input, capacity)
	}
	file := input.(fileDescriptor)

	fmt.Fprint(promptOutput, prompt)
	typed, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(promptOutput)
	defer secret.Zero(typed)
	if err != nil {
		return nil, fmt.Errorf("reading from terminal: %w", err)
	}
	if len(typed) == 0 {
		return nil, errors.New("secret is empty")
	}

	buffer, err := secret.New(capacity)
	if err != nil {
		return nil, err
	}
	if buffer.CopyAndPad(typed) {
		buffer.Close()
		return nil, fmt.Errorf("secret exceeds %d bytes", capacity)
	}
	return buffer, nil
}
