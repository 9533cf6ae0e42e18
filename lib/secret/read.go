// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// NewFromReader reads at most capacity bytes from reader directly into
// a new locked buffer. The read goes straight into the protected
// region through the raw storage slice, so the secret never touches
// ordinary memory. Reading stops at EOF; input longer than capacity is
// an error. A zero byte in the input ends the content.
func NewFromReader(reader io.Reader, capacity int) (*Buffer, error) {
	buffer, err := New(capacity)
	if err != nil {
		return nil, err
	}

	// Read one byte more than capacity: filling the terminator slot
	// means the input did not fit.
	storage := buffer.Ref().UnsafeStorage()
	count, err := io.ReadFull(reader, storage)
	switch {
	case err == nil:
		buffer.Close()
		return nil, fmt.Errorf("secret: input exceeds %d bytes", capacity)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		storage[count] = 0
	default:
		buffer.Close()
		return nil, fmt.Errorf("secret: reading input: %w", err)
	}

	return buffer, nil
}

// ReadFromPath reads a secret from a file path, or from stdin if path
// is "-". At most capacity bytes are accepted. Leading and trailing
// whitespace is removed in place. Returns an error if the secret is
// empty after trimming. The returned buffer must be closed by the
// caller.
func ReadFromPath(path string, capacity int) (*Buffer, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	return ReadTrimmed(reader, capacity)
}

// ReadTrimmed reads a secret from reader into a new locked buffer,
// removing leading and trailing whitespace in place. At most capacity
// bytes are accepted after trimming. Returns an error if the secret is
// empty after trimming.
func ReadTrimmed(reader io.Reader, capacity int) (*Buffer, error) {
	// Leave room for surrounding whitespace such as a trailing newline.
	buffer, err := NewFromReader(reader, capacity+trimAllowance)
	if err != nil {
		return nil, err
	}

	ref := buffer.Ref()
	ref.StripTrailingSpaces()
	leading := 0
	for leading < ref.Len() && isSpace(ref.At(leading)) {
		leading++
	}
	ref.Erase(0, leading)

	// Trimming leaves stale bytes past the new terminator. Re-pad so
	// the buffer stays comparable with Equal.
	clear(ref.UnsafeStorage()[ref.Len():])

	if ref.IsEmpty() {
		buffer.Close()
		return nil, fmt.Errorf("secret is empty")
	}
	if ref.Len() > capacity {
		buffer.Close()
		return nil, fmt.Errorf("secret exceeds %d bytes", capacity)
	}
	return buffer, nil
}

// trimAllowance is the extra room ReadFromPath reads for whitespace
// that is trimmed before the capacity check.
const trimAllowance = 16

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
