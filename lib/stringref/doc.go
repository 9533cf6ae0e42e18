// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stringref provides bounded, zero-terminated text buffers that
// never grow and never allocate.
//
// Two types cooperate:
//
//   - [Ref] wraps a caller-supplied byte slice whose length is the total
//     capacity of the buffer, terminator included. It owns nothing; it
//     exists so that code can pass one value around instead of a
//     (pointer, length) pair.
//   - [String] is a fixed-size buffer with inline storage. Its size is a
//     type parameter: String[[33]byte] holds up to 32 bytes of content
//     plus the terminator. Every operation is forwarded through
//     [String.Ref], which projects a Ref over the inline storage.
//
// Content is a run of bytes followed by a single zero byte. Bytes after
// the terminator are unspecified unless the owner zero-pads them with
// [String.CopyAndPad]. No locale or Unicode handling is performed: case
// folding is ASCII only and all offsets are byte offsets.
//
// # Overflow contract
//
// Every mutating call that could exceed capacity returns true when it
// did not fit. Calls fall into two classes:
//
//   - Best effort: [Ref.Copy], [Ref.CopyN], [Ref.Cat], [Ref.CatN],
//     [Ref.CatLine], [Ref.Printf], [Ref.Catf]. As much as fits is
//     written.
//   - Atomic: [Ref.Lcat], [Ref.LcatN], [Ref.Prepend], [Ref.Insert],
//     [Ref.InsertByte], and [Ref.Lcatf] when nothing fits. The buffer is
//     left byte-for-byte unchanged on failure.
//
// Out-of-range positions passed to [Ref.Truncate], [Ref.Erase], and the
// insert calls are no-ops. Nothing in this package panics on bad input,
// and the buffer is always left terminated within capacity.
//
// The formatting calls accept fmt verbs and return the number of bytes
// the complete output would have needed, so callers detect truncation by
// comparing against [Ref.Capacity]. When formatted output is cut short,
// the cut backs off to the last complete UTF-8 sequence.
//
// # Constant-time comparison
//
// [String.ConstantTimeEquals] compares secrets (PINs, tokens) without
// leaking the position of the first difference. Both operands must have
// been filled with [String.CopyAndPad] so that the bytes past the
// terminator are zero rather than leftovers from a previous value.
//
// # Raw access
//
// [Ref.UnsafeStorage] and [String.UnsafeStorage] hand out the whole
// backing slice for filling by code that does not know about this
// package. Writes through it bypass every bounds and terminator
// guarantee until the caller calls [String.EnsureNullTerminated] or
// otherwise re-terminates the content.
//
// Nothing here is safe for concurrent use; callers sharing a buffer
// serialize access themselves.
//
// This package depends on no other packages in this module.
package stringref
