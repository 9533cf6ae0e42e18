// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stringref

import (
	"fmt"
	"unicode/utf8"
)

// Printf formats into the buffer, replacing its content. It returns the
// length the complete output would have needed; a result greater than
// Capacity means the content was truncated.
func (r Ref) Printf(format string, args ...any) int {
	return r.Vprintf(format, args)
}

// Vprintf is Printf with the arguments supplied as a slice.
func (r Ref) Vprintf(format string, args []any) int {
	if len(r.data) == 0 {
		return formattedLength(format, args)
	}
	total, _ := formatInto(r.data, format, args)
	return total
}

// Catf formats onto the end of the content, writing as much as fits. It
// returns the length the appended text would have needed.
func (r Ref) Catf(format string, args ...any) int {
	return r.Vcatf(format, args)
}

// Vcatf is Catf with the arguments supplied as a slice.
func (r Ref) Vcatf(format string, args []any) int {
	if len(r.data) == 0 {
		return formattedLength(format, args)
	}
	total, _ := formatInto(r.data[r.Len():], format, args)
	return total
}

// Lcatf formats onto the end of the content like Catf, except that when
// the output is non-empty and not a single byte of it fits, the buffer
// is left unchanged and Lcatf returns -1.
func (r Ref) Lcatf(format string, args ...any) int {
	if len(r.data) == 0 {
		if total := formattedLength(format, args); total > 0 {
			return -1
		}
		return 0
	}

	length := r.Len()
	total, written := formatInto(r.data[length:], format, args)
	if total > 0 && written == 0 {
		return -1
	}
	return total
}

// CatLinef formats onto the end of the content as a new line: when the
// buffer already holds content, a newline is appended first. It returns
// the length the appended text, newline included, would have needed.
func (r Ref) CatLinef(format string, args ...any) int {
	separator := 0
	if !r.IsEmpty() {
		r.CatByte('\n')
		separator = 1
	}
	return separator + r.Vcatf(format, args)
}

// formatInto formats into destination, which must be at least one byte
// long, and terminates the result. It returns the untruncated length of
// the output and the number of bytes actually stored.
//
// Bytes of a partial rune dropped by the back-off are restored to what
// storage held before the call, so a zero-padded tail stays padded and a
// failed Lcatf leaves storage untouched.
func formatInto(destination []byte, format string, args []any) (total, written int) {
	region := destination[:len(destination)-1]

	// Truncation only happens once the region is full, and the back-off
	// drops at most the last UTFMax-1 bytes.
	tailStart := max(len(region)-(utf8.UTFMax-1), 0)
	var saved [utf8.UTFMax - 1]byte
	copy(saved[:], region[tailStart:])

	output := truncatingWriter{destination: region}
	fmt.Fprintf(&output, format, args...)

	written = output.written
	if output.total > written {
		written = completeRunes(region[:written])
		start := max(written, tailStart)
		copy(region[start:output.written], saved[start-tailStart:])
	}
	destination[written] = 0
	return output.total, written
}

// formattedLength measures output for a buffer with no storage at all.
func formattedLength(format string, args []any) int {
	var output truncatingWriter
	fmt.Fprintf(&output, format, args...)
	return output.total
}

// truncatingWriter keeps the first len(destination) bytes written to it
// and counts the rest. Write always reports the full length so that fmt
// carries on formatting and the final count is the untruncated length.
type truncatingWriter struct {
	destination []byte
	written     int
	total       int
}

func (w *truncatingWriter) Write(p []byte) (int, error) {
	w.total += len(p)
	w.written += copy(w.destination[w.written:], p)
	return len(p), nil
}

// completeRunes returns the length of b with any trailing incomplete
// UTF-8 sequence removed. Bytes that are not UTF-8 at all are kept.
func completeRunes(b []byte) int {
	for index := len(b) - 1; index >= 0 && index >= len(b)-utf8.UTFMax; index-- {
		if utf8.RuneStart(b[index]) {
			if utf8.FullRune(b[index:]) {
				return len(b)
			}
			return index
		}
	}
	return len(b)
}
