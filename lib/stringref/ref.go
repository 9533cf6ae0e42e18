// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stringref

import "bytes"

// Ref describes a text buffer together with its capacity. The slice
// length is the total storage size, terminator included, so a Ref over
// make([]byte, 8) holds at most 7 bytes of content.
//
// A Ref does not own its storage and must not outlive it. Copying a Ref
// copies the handle, not the bytes: both copies write the same memory.
type Ref struct {
	data []byte
}

// NewRef wraps data as a buffer. The content is whatever data already
// holds up to its first zero byte; call [Ref.Clear] first when data is
// fresh memory of unknown content.
func NewRef(data []byte) Ref {
	return Ref{data: data}
}

// Capacity returns the maximum content length, excluding the
// terminator.
func (r Ref) Capacity() int {
	if len(r.data) == 0 {
		return 0
	}
	return len(r.data) - 1
}

// Len returns the content length. The scan never goes past the end of
// storage: a buffer with no terminator reports Capacity, and the next
// mutating call terminates it there.
func (r Ref) Len() int {
	if index := bytes.IndexByte(r.data, 0); index >= 0 {
		return index
	}
	return r.Capacity()
}

// IsEmpty reports whether the content is empty.
func (r Ref) IsEmpty() bool {
	return len(r.data) == 0 || r.data[0] == 0
}

// Bytes returns the content. The slice aliases the storage.
func (r Ref) Bytes() []byte {
	return r.data[:r.Len()]
}

// String returns a copy of the content. This allocates; use Bytes on
// paths that must not.
func (r Ref) String() string {
	return string(r.Bytes())
}

// MarshalText implements encoding.TextMarshaler with a copy of the
// content.
func (r Ref) MarshalText() ([]byte, error) {
	return r.AppendText(nil)
}

// AppendText implements encoding.TextAppender.
func (r Ref) AppendText(b []byte) ([]byte, error) {
	return append(b, r.Bytes()...), nil
}

// UnsafeStorage returns the entire backing slice, terminator slot
// included. Writes through it are unchecked: the caller is responsible
// for leaving a zero byte within the slice before any other method is
// called.
func (r Ref) UnsafeStorage() []byte {
	return r.data
}

// At returns the byte at index, or 0 when index is outside storage.
func (r Ref) At(index int) byte {
	if index < 0 || index >= len(r.data) {
		return 0
	}
	return r.data[index]
}

// Set stores c at index. Indexes outside the content capacity are
// ignored, so the final storage byte always remains available for the
// terminator.
func (r Ref) Set(index int, c byte) {
	if index < 0 || index >= r.Capacity() {
		return
	}
	r.data[index] = c
}

// Clear empties the buffer.
func (r Ref) Clear() {
	if len(r.data) > 0 {
		r.data[0] = 0
	}
}

// Copy replaces the content with src. Returns true if src was
// truncated to fit.
func (r Ref) Copy(src string) bool {
	return r.CopyN(src, len(src))
}

// CopyN replaces the content with at most maxLength bytes of src.
// Returns true if the bytes requested did not all fit.
func (r Ref) CopyN(src string, maxLength int) bool {
	length := min(sourceLength(src), max(maxLength, 0))
	if len(r.data) == 0 {
		return length > 0
	}

	truncated := length > r.Capacity()
	if truncated {
		length = r.Capacity()
	}
	copy(r.data, src[:length])
	r.data[length] = 0
	return truncated
}

// Cat appends src. Returns true if src was truncated to fit.
func (r Ref) Cat(src string) bool {
	return r.CatN(src, len(src))
}

// CatN appends at most count bytes of src, writing as much as fits.
// Returns true if the bytes requested did not all fit.
func (r Ref) CatN(src string, count int) bool {
	count = min(sourceLength(src), max(count, 0))
	if len(r.data) == 0 {
		return count > 0
	}

	length := r.Len()
	room := r.Capacity() - length
	truncated := count > room
	if truncated {
		count = room
	}
	copy(r.data[length:], src[:count])
	r.data[length+count] = 0
	return truncated
}

// Lcat appends src only if all of it fits. On overflow the content is
// unchanged and Lcat returns true.
func (r Ref) Lcat(src string) bool {
	return r.LcatN(src, len(src))
}

// LcatN appends at most count bytes of src only if all of them fit. On
// overflow the content is unchanged and LcatN returns true.
func (r Ref) LcatN(src string, count int) bool {
	count = min(sourceLength(src), max(count, 0))
	if len(r.data) == 0 {
		return count > 0
	}

	length := r.Len()
	if count > r.Capacity()-length {
		r.data[length] = 0
		return true
	}
	copy(r.data[length:], src[:count])
	r.data[length+count] = 0
	return false
}

// CatByte appends a single byte. Returns true if there was no room.
func (r Ref) CatByte(c byte) bool {
	if len(r.data) == 0 {
		return true
	}

	length := r.Len()
	if length >= r.Capacity() {
		r.data[length] = 0
		return true
	}
	r.data[length] = c
	r.data[length+1] = 0
	return false
}

// CatLine appends src as a new line: when the buffer already holds
// content, a newline is appended first. Best effort, like Cat.
func (r Ref) CatLine(src string) bool {
	if !r.IsEmpty() && r.CatByte('\n') {
		return true
	}
	return r.Cat(src)
}

// StripTrailingSpaces removes trailing ASCII whitespace and returns the
// resulting length.
func (r Ref) StripTrailingSpaces() int {
	if len(r.data) == 0 {
		return 0
	}

	length := r.Len()
	for length > 0 && isSpace(r.data[length-1]) {
		length--
	}
	r.data[length] = 0
	return length
}

// Prepend inserts src before the existing content. If the result would
// not fit, the content is unchanged and Prepend returns true.
func (r Ref) Prepend(src string) bool {
	return r.Insert(0, src)
}

// Truncate cuts the content to pos bytes. A pos at or beyond the
// current length leaves the content alone.
func (r Ref) Truncate(pos int) {
	if pos >= 0 && pos < r.Len() {
		r.data[pos] = 0
	}
}

// Erase removes count bytes starting at pos, shifting the rest of the
// content left. A pos outside the content is ignored, and count is
// clamped to the bytes available.
func (r Ref) Erase(pos, count int) {
	length := r.Len()
	if pos < 0 || pos >= length || count <= 0 {
		return
	}
	count = min(count, length-pos)
	copy(r.data[pos:], r.data[pos+count:length])
	r.data[length-count] = 0
}

// InsertByte inserts c at pos, shifting the content at and after pos
// right. Returns true if there was no room, in which case the content
// is unchanged. A pos beyond the content is ignored.
func (r Ref) InsertByte(pos int, c byte) bool {
	length := r.Len()
	if pos < 0 || pos > length {
		return false
	}
	if len(r.data) == 0 {
		return true
	}
	if length >= r.Capacity() {
		r.data[length] = 0
		return true
	}
	copy(r.data[pos+1:], r.data[pos:length])
	r.data[pos] = c
	r.data[length+1] = 0
	return false
}

// Insert inserts s at pos, shifting the content at and after pos right.
// Returns true if s does not fit, in which case the content is
// unchanged. A pos beyond the content is ignored.
func (r Ref) Insert(pos int, s string) bool {
	count := sourceLength(s)
	length := r.Len()
	if pos < 0 || pos > length {
		return false
	}
	if len(r.data) == 0 {
		return count > 0
	}
	if count > r.Capacity()-length {
		r.data[length] = 0
		return true
	}
	copy(r.data[pos+count:], r.data[pos:length])
	copy(r.data[pos:], s[:count])
	r.data[length+count] = 0
	return false
}

// Equals reports whether the content is exactly s.
func (r Ref) Equals(s string) bool {
	return string(r.Bytes()) == s[:sourceLength(s)]
}

// EqualsIgnoreCase reports whether the content equals s under ASCII
// case folding.
func (r Ref) EqualsIgnoreCase(s string) bool {
	content := r.Bytes()
	s = s[:sourceLength(s)]
	if len(content) != len(s) {
		return false
	}
	for index := range content {
		if toLower(content[index]) != toLower(s[index]) {
			return false
		}
	}
	return true
}

// Index returns the offset of the first occurrence of s in the content,
// or -1. An empty s matches at offset 0.
func (r Ref) Index(s string) int {
	content := r.Bytes()
	s = s[:sourceLength(s)]
	for offset := 0; offset+len(s) <= len(content); offset++ {
		if string(content[offset:offset+len(s)]) == s {
			return offset
		}
	}
	return -1
}

// IndexByte returns the offset of the first c in the content, or -1.
// Searching for the zero byte finds the terminator, at offset Len.
func (r Ref) IndexByte(c byte) int {
	if c == 0 {
		return r.Len()
	}
	return bytes.IndexByte(r.Bytes(), c)
}

// Skip moves the start of the buffer forward by one byte, dropping the
// first content byte from this Ref's view. Capacity shrinks by one.
// Returns false, leaving the Ref alone, when the content is empty.
func (r *Ref) Skip() bool {
	if r.IsEmpty() || len(r.data) < 2 {
		return false
	}
	r.data = r.data[1:]
	return true
}

// Backspace removes the last content byte.
func (r Ref) Backspace() {
	if length := r.Len(); length > 0 {
		r.data[length-1] = 0
	}
}

// sourceLength returns the length of s up to its first zero byte, the
// same bytes a terminated source would contribute.
func sourceLength(s string) int {
	for index := 0; index < len(s); index++ {
		if s[index] == 0 {
			return index
		}
	}
	return len(s)
}

// isSpace matches the bytes C's isspace accepts in the "C" locale.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
