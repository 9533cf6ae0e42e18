// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"fmt"
)

// GarbageByte is the fill value used by [Garbage].
const GarbageByte = 0xA5

// Garbage returns size bytes of non-zero filler with a terminator at
// index 0, i.e. an empty buffer whose tail is dirty.
//
//	storage := testutil.Garbage(8)
//	ref := stringref.NewRef(storage)
func Garbage(size int) []byte {
	storage := bytes.Repeat([]byte{GarbageByte}, size)
	if size > 0 {
		storage[0] = 0
	}
	return storage
}

// Snapshot returns a copy of storage for a later [RequireUnchanged].
func Snapshot(storage []byte) []byte {
	return bytes.Clone(storage)
}

// RequireTerminated fails the test unless storage holds want followed
// by a zero byte.
//
//	testutil.RequireTerminated(t, ref.UnsafeStorage(), "HelloWo")
func RequireTerminated(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, storage []byte, want string, msgAndArgs ...any) {
	t.Helper()
	terminator := bytes.IndexByte(storage, 0)
	if terminator < 0 {
		t.Fatalf("storage %q has no terminator: %s", storage, formatMessage(msgAndArgs))
	}
	if got := string(storage[:terminator]); got != want {
		t.Fatalf("content = %q, want %q: %s", got, want, formatMessage(msgAndArgs))
	}
}

// RequireUnchanged fails the test unless storage is byte-for-byte
// identical to before, including the bytes past the terminator.
func RequireUnchanged(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, before, storage []byte, msgAndArgs ...any) {
	t.Helper()
	if !bytes.Equal(before, storage) {
		t.Fatalf("storage changed from %q to %q: %s", before, storage, formatMessage(msgAndArgs))
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
