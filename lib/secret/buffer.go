// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/subtle"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/stringref/lib/stringref"
)

// Buffer holds a zero-terminated secret in memory that is locked
// against swapping, excluded from core dumps, and zeroed on close.
//
// A Buffer must not be copied after creation. Use Close to release the
// memory when the secret is no longer needed.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// New allocates an empty secret buffer that holds up to capacity
// bytes of content. The backing region is capacity+1 bytes of
// anonymous mmap memory that is:
//   - Locked into physical RAM (mlock), preventing swap
//   - Excluded from core dumps (MADV_DONTDUMP)
//   - Outside the Go heap, invisible to the garbage collector
//
// The caller must call Close when the secret is no longer needed.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("secret: buffer capacity must be positive, got %d", capacity)
	}

	// The region is zero-filled, so the buffer starts empty and padded.
	data, err := unix.Mmap(-1, 0, capacity+1, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Buffer{data: data}, nil
}

// NewFromBytes creates a secret buffer sized exactly for source. The
// source bytes are copied into the protected region and then zeroed in
// place, so the caller's original slice no longer holds the secret.
// Copying stops at the first zero byte in source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}

	buffer.Ref().Copy(bytesAsString(source))
	Zero(source)

	return buffer, nil
}

// Ref returns a [stringref.Ref] over the locked region. The Ref is
// valid until Close; using it afterwards is a use-after-free. Panics
// if the buffer has been closed.
func (b *Buffer) Ref() stringref.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: access to closed buffer")
	}

	return stringref.NewRef(b.data)
}

// Bytes returns the content. The returned slice points directly into
// the mmap region; do not hold references to it beyond the lifetime of
// the Buffer. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	return b.Ref().Bytes()
}

// String returns the content as a string. The returned string is a
// heap-allocated copy, so this should only be used at API boundaries
// that require string arguments. Prefer Bytes or Ref when possible.
//
// Panics if the buffer has been closed.
func (b *Buffer) String() string {
	return b.Ref().String()
}

// Len returns the content length.
func (b *Buffer) Len() int {
	return b.Ref().Len()
}

// Capacity returns the maximum content length.
func (b *Buffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data) - 1
}

// CopyAndPad zeroes the whole region and copies source in, stopping at
// the first zero byte. Returns true if source was truncated. Source is
// not modified; callers holding it in ordinary memory should [Zero] it
// afterwards.
func (b *Buffer) CopyAndPad(source []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: write to closed buffer")
	}

	clear(b.data)
	return stringref.NewRef(b.data).Copy(bytesAsString(source))
}

// Equal reports whether b and other hold identical regions, comparing
// in constant time. Buffers of different capacity are never equal.
// Both buffers must be padded: either freshly allocated, or filled via
// CopyAndPad, NewFromBytes, or the read constructors.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	other.mu.Lock()
	defer other.mu.Unlock()

	if b.closed || other.closed {
		panic("secret: compare with closed buffer")
	}

	return subtle.ConstantTimeCompare(b.data, other.data) == 1
}

// Close zeros the buffer contents, unlocks and unmaps the memory.
// After Close, any access to the buffer's contents will panic.
// Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	clear(b.data)

	// Unlock and unmap. Errors here are reported but not fatal; the
	// memory is released when the process exits regardless.
	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

// Zero overwrites data with zero bytes. Use it on ordinary slices that
// briefly held a secret before it was moved into a Buffer.
func Zero(data []byte) {
	clear(data)
}

// bytesAsString views data as a string without copying it, so that a
// secret can be passed to the stringref API without a heap copy. The
// string must not be retained past the call it is passed to.
func bytesAsString(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return unsafe.String(&data[0], len(data))
}
