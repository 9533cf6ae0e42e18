// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides zero-terminated text buffers for sensitive
// data such as PINs and passwords, backed by memory that never enters
// the Go heap.
//
// [Buffer] allocates memory via mmap(MAP_ANONYMOUS), locks it into
// physical RAM via mlock (preventing swap), and marks it excluded from
// core dumps via madvise(MADV_DONTDUMP). On Close, the memory is
// zeroed, unlocked, and unmapped. Because the memory lives outside the
// Go heap, the garbage collector cannot copy or relocate it.
//
// The region is exposed as a [stringref.Ref] through [Buffer.Ref], so
// all of the bounded editing operations work on locked memory without
// the secret passing through a heap-allocated string.
//
// Constructors:
//
//   - [New] -- allocates an empty buffer holding up to capacity bytes
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [NewFromReader] -- reads directly into protected memory with a
//     size limit
//   - [ReadFromPath] -- file or stdin, surrounding whitespace removed
//
// [Buffer.CopyAndPad] rewrites the whole region so that [Buffer.Equal]
// can compare two buffers in constant time. After Close, any access
// panics. Close is idempotent.
//
// Depends on golang.org/x/sys/unix and lib/stringref.
package secret
