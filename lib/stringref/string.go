// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stringref

import (
	"crypto/subtle"
	"errors"
	"unsafe"
)

// ErrOverflow is returned by [String.UnmarshalText] when the input is
// longer than the buffer's capacity.
var ErrOverflow = errors.New("stringref: content exceeds capacity")

// Storage is the set of inline arrays a [String] can be declared over.
// The array length is the content capacity plus one byte for the
// terminator.
//
// Go cannot constrain a type parameter to "any byte array", so the set
// is closed: String[[15]byte] does not compile. To support another size,
// add its array type to this union (and an alias below if it is common).
// For sizes only known at run time, wrap caller storage with [NewRef].
type Storage interface {
	~[2]byte | ~[3]byte | ~[4]byte | ~[5]byte | ~[6]byte | ~[7]byte |
		~[8]byte | ~[9]byte | ~[10]byte | ~[11]byte | ~[12]byte | ~[13]byte |
		~[16]byte | ~[17]byte | ~[21]byte | ~[25]byte | ~[32]byte | ~[33]byte |
		~[41]byte | ~[51]byte | ~[64]byte | ~[65]byte | ~[81]byte | ~[101]byte |
		~[128]byte | ~[129]byte | ~[201]byte | ~[256]byte | ~[257]byte |
		~[512]byte | ~[513]byte | ~[1024]byte | ~[1025]byte
}

// Common buffer sizes. The number is the content capacity.
type (
	String8   = String[[9]byte]
	String16  = String[[17]byte]
	String32  = String[[33]byte]
	String50  = String[[51]byte]
	String64  = String[[65]byte]
	String100 = String[[101]byte]
	String128 = String[[129]byte]
	String256 = String[[257]byte]
	String512 = String[[513]byte]
)

// String is a text buffer with inline storage. The zero value is an
// empty string. A String must not be copied while a [Ref] obtained from
// it is in use, since the Ref points at the original's storage.
type String[S Storage] struct {
	storage S
}

// Ref returns a [Ref] over the inline storage.
func (s *String[S]) Ref() Ref {
	return Ref{data: s.bytes()}
}

// bytes views the inline array as a slice without copying it.
func (s *String[S]) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.storage)), unsafe.Sizeof(s.storage))
}

// Capacity returns the maximum content length.
func (s *String[S]) Capacity() int { return int(unsafe.Sizeof(s.storage)) - 1 }

// Len returns the content length. See [Ref.Len].
func (s *String[S]) Len() int { return s.Ref().Len() }

// IsEmpty reports whether the content is empty.
func (s *String[S]) IsEmpty() bool { return s.bytes()[0] == 0 }

// Bytes returns the content, aliasing the inline storage.
func (s *String[S]) Bytes() []byte { return s.Ref().Bytes() }

// String returns a copy of the content.
func (s *String[S]) String() string { return s.Ref().String() }

// IsFull reports whether the content occupies the whole capacity.
func (s *String[S]) IsFull() bool { return s.Len() == s.Capacity() }

// EndsWith reports whether the last content byte is c.
func (s *String[S]) EndsWith(c byte) bool {
	length := s.Len()
	return length != 0 && s.bytes()[length-1] == c
}

// At returns the byte at index, or 0 outside storage. See [Ref.At].
func (s *String[S]) At(index int) byte { return s.Ref().At(index) }

// Set stores c at index when index is within capacity. See [Ref.Set].
func (s *String[S]) Set(index int, c byte) { s.Ref().Set(index, c) }

// Clear empties the string without touching the tail.
func (s *String[S]) Clear() { s.bytes()[0] = 0 }

// Printf replaces the content with formatted output. See [Ref.Printf].
func (s *String[S]) Printf(format string, args ...any) int {
	return s.Ref().Vprintf(format, args)
}

// Vprintf is Printf with the arguments supplied as a slice.
func (s *String[S]) Vprintf(format string, args []any) int {
	return s.Ref().Vprintf(format, args)
}

// Catf appends formatted output, best effort. See [Ref.Catf].
func (s *String[S]) Catf(format string, args ...any) int {
	return s.Ref().Vcatf(format, args)
}

// Vcatf is Catf with the arguments supplied as a slice.
func (s *String[S]) Vcatf(format string, args []any) int {
	return s.Ref().Vcatf(format, args)
}

// Lcatf appends formatted output, or returns -1 and leaves storage
// alone when none of it fits. See [Ref.Lcatf].
func (s *String[S]) Lcatf(format string, args ...any) int {
	return s.Ref().Lcatf(format, args...)
}

// CatLinef appends formatted output on a new line. See [Ref.CatLinef].
func (s *String[S]) CatLinef(format string, args ...any) int {
	return s.Ref().CatLinef(format, args...)
}

// The editing and comparison methods below forward to the [Ref] method
// of the same name and share its overflow and range semantics.

// Copy replaces the content with src; true if truncated.
func (s *String[S]) Copy(src string) bool { return s.Ref().Copy(src) }

// CopyN replaces the content with at most maxLength bytes of src.
func (s *String[S]) CopyN(src string, maxLength int) bool { return s.Ref().CopyN(src, maxLength) }

// Cat appends src, best effort; true if truncated.
func (s *String[S]) Cat(src string) bool { return s.Ref().Cat(src) }

// CatN appends at most count bytes of src, best effort.
func (s *String[S]) CatN(src string, count int) bool { return s.Ref().CatN(src, count) }

// Lcat appends src only if all of it fits.
func (s *String[S]) Lcat(src string) bool { return s.Ref().Lcat(src) }

// LcatN appends count bytes of src only if all of them fit.
func (s *String[S]) LcatN(src string, count int) bool { return s.Ref().LcatN(src, count) }

// CatByte appends c; true if there was no room.
func (s *String[S]) CatByte(c byte) bool { return s.Ref().CatByte(c) }

// CatLine appends src on a new line.
func (s *String[S]) CatLine(src string) bool { return s.Ref().CatLine(src) }

// StripTrailingSpaces removes trailing ASCII whitespace.
func (s *String[S]) StripTrailingSpaces() int { return s.Ref().StripTrailingSpaces() }

// Prepend inserts src before the content only if it fits.
func (s *String[S]) Prepend(src string) bool { return s.Ref().Prepend(src) }

// Truncate cuts the content to pos bytes.
func (s *String[S]) Truncate(pos int) { s.Ref().Truncate(pos) }

// Erase removes count bytes at pos.
func (s *String[S]) Erase(pos, count int) { s.Ref().Erase(pos, count) }

// InsertByte inserts c at pos only if there is room.
func (s *String[S]) InsertByte(pos int, c byte) bool { return s.Ref().InsertByte(pos, c) }

// Insert inserts src at pos only if it fits.
func (s *String[S]) Insert(pos int, src string) bool { return s.Ref().Insert(pos, src) }

// Equals reports whether the content is exactly other.
func (s *String[S]) Equals(other string) bool { return s.Ref().Equals(other) }

// EqualsIgnoreCase compares with ASCII case folding.
func (s *String[S]) EqualsIgnoreCase(other string) bool { return s.Ref().EqualsIgnoreCase(other) }

// Index returns the offset of substring, or -1.
func (s *String[S]) Index(substring string) int { return s.Ref().Index(substring) }

// IndexByte returns the offset of c, or -1.
func (s *String[S]) IndexByte(c byte) int { return s.Ref().IndexByte(c) }

// Backspace removes the last content byte.
func (s *String[S]) Backspace() { s.Ref().Backspace() }

// CopyAndPad zeroes all of storage, terminator slot included, and then
// copies src in. Use it before [String.ConstantTimeEquals], and whenever
// the previous content was a secret that must not linger past the new
// terminator.
func (s *String[S]) CopyAndPad(src string) bool {
	clear(s.bytes())
	return s.Copy(src)
}

// ConstantTimeEquals compares the content bytes of s and other without
// stopping at the first difference, so the time taken does not reveal
// where the operands diverge. Both must have been filled with
// [String.CopyAndPad]; otherwise stale bytes past the terminator make
// equal content compare unequal.
func (s *String[S]) ConstantTimeEquals(other *String[S]) bool {
	capacity := s.Capacity()
	return subtle.ConstantTimeCompare(s.bytes()[:capacity], other.bytes()[:capacity]) == 1
}

// UnsafeStorage returns the whole inline array as a slice, for filling
// by code that knows nothing about terminators. Call
// [String.EnsureNullTerminated] once the external writer is done.
func (s *String[S]) UnsafeStorage() []byte {
	return s.bytes()
}

// EnsureNullTerminated writes a terminator into the last storage byte,
// restoring the length bound after writes through UnsafeStorage.
func (s *String[S]) EnsureNullTerminated() {
	s.bytes()[s.Capacity()] = 0
}

// MarshalText implements encoding.TextMarshaler.
func (s String[S]) MarshalText() ([]byte, error) {
	return s.AppendText(nil)
}

// AppendText implements encoding.TextAppender.
func (s String[S]) AppendText(b []byte) ([]byte, error) {
	return append(b, s.Bytes()...), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Input longer than
// the capacity is stored truncated and reported as [ErrOverflow].
func (s *String[S]) UnmarshalText(text []byte) error {
	if s.Copy(string(text)) {
		return ErrOverflow
	}
	return nil
}
