// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/stringref/lib/testutil"
)

func TestReadFromPath_File(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain value",
			content:  "my-secret-token",
			expected: "my-secret-token",
		},
		{
			name:     "trailing newline",
			content:  "my-secret-token\n",
			expected: "my-secret-token",
		},
		{
			name:     "trailing whitespace",
			content:  "my-secret-token  \n",
			expected: "my-secret-token",
		},
		{
			name:     "leading whitespace",
			content:  "  my-secret-token",
			expected: "my-secret-token",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := testutil.WriteFile(t, "secret", test.content)

			result, err := ReadFromPath(path, 32)
			if err != nil {
				t.Fatalf("ReadFromPath() error: %v", err)
			}
			defer result.Close()
			if result.String() != test.expected {
				t.Errorf("ReadFromPath() = %q, want %q", result.String(), test.expected)
			}

			// Trimming must leave the region padded.
			storage := result.Ref().UnsafeStorage()
			for index := len(test.expected); index < len(storage); index++ {
				if storage[index] != 0 {
					t.Fatalf("storage[%d] = %#x after trimming, want 0", index, storage[index])
				}
			}
		})
	}
}

func TestReadFromPath_FileNotFound(t *testing.T) {
	if _, err := ReadFromPath("/nonexistent/path/to/secret", 32); err == nil {
		t.Error("ReadFromPath() with nonexistent file should return error")
	}
}

func TestReadFromPath_EmptyFile(t *testing.T) {
	path := testutil.WriteFile(t, "empty", "")
	if _, err := ReadFromPath(path, 32); err == nil {
		t.Error("ReadFromPath() with empty file should return error")
	}
}

func TestReadFromPath_WhitespaceOnly(t *testing.T) {
	path := testutil.WriteFile(t, "whitespace", "   \n\t\n")
	if _, err := ReadFromPath(path, 32); err == nil {
		t.Error("ReadFromPath() with whitespace-only file should return error")
	}
}

func TestReadFromPath_TooLong(t *testing.T) {
	path := testutil.WriteFile(t, "long", strings.Repeat("x", 12)+"\n")
	if _, err := ReadFromPath(path, 8); err == nil {
		t.Error("ReadFromPath() with content over capacity should return error")
	}
}

func TestNewFromReader(t *testing.T) {
	buffer, err := NewFromReader(bytes.NewReader([]byte("1234")), 8)
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "1234" {
		t.Errorf("content = %q, want %q", got, "1234")
	}
}

func TestNewFromReader_ExactCapacity(t *testing.T) {
	buffer, err := NewFromReader(bytes.NewReader([]byte("12345678")), 8)
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "12345678" {
		t.Errorf("content = %q", got)
	}
}

func TestNewFromReader_TooLong(t *testing.T) {
	if _, err := NewFromReader(bytes.NewReader([]byte("123456789")), 8); err == nil {
		t.Error("expected error for input longer than capacity")
	}
}

func TestReadTrimmed(t *testing.T) {
	buffer, err := ReadTrimmed(strings.NewReader("  2580\r\n"), 4)
	if err != nil {
		t.Fatalf("ReadTrimmed failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "2580" {
		t.Errorf("content = %q, want %q", got, "2580")
	}

	storage := buffer.Ref().UnsafeStorage()
	for index := 4; index < len(storage); index++ {
		if storage[index] != 0 {
			t.Fatalf("storage[%d] = %#x after trimming, want 0", index, storage[index])
		}
	}
}
