// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"encoding/json"
	"testing"

	"github.com/bureau-foundation/stringref/lib/stringref"
)

func TestRunFormat(t *testing.T) {
	tests := []struct {
		name          string
		capacity      int
		initial       string
		mode          string
		format        string
		values        []any
		wantContent   string
		wantNeeded    int
		wantTruncated bool
	}{
		{"print fits", 16, "old", "print", "%d-%s", []any{42, "ok"}, "42-ok", 5, false},
		{"print truncates", 7, "", "print", "%s", []any{"HelloWorld"}, "HelloWo", 10, true},
		{"cat best effort", 7, "ab", "cat", "%d", []any{123456}, "ab12345", 6, true},
		{"lcat no room", 3, "abc", "lcat", "%s", []any{"x"}, "abc", -1, true},
		{"lcat fits", 8, "ab", "lcat", "%s", []any{"cd"}, "abcd", 2, false},
		{"line", 16, "G28", "line", "%s", []any{"ok"}, "G28\nok", 3, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ref := stringref.NewRef(make([]byte, test.capacity+1))
			ref.Copy(test.initial)

			result, err := runFormat(ref, test.mode, test.format, test.values)
			if err != nil {
				t.Fatalf("runFormat failed: %v", err)
			}
			if got := ref.String(); got != test.wantContent {
				t.Errorf("content = %q, want %q", got, test.wantContent)
			}
			if result.Needed != test.wantNeeded {
				t.Errorf("needed = %d, want %d", result.Needed, test.wantNeeded)
			}
			if result.Truncated != test.wantTruncated {
				t.Errorf("truncated = %v, want %v", result.Truncated, test.wantTruncated)
			}
			if result.Length != ref.Len() {
				t.Errorf("length = %d, want %d", result.Length, ref.Len())
			}
		})
	}
}

func TestRunFormat_UnknownMode(t *testing.T) {
	ref := stringref.NewRef(make([]byte, 8))
	if _, err := runFormat(ref, "shout", "%s", []any{"x"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFormatCommand(t *testing.T) {
	output, err := execute(t, formatCommand, "-n", "7", "%s%s", "Hello", "World")
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if output != "HelloWo\n" {
		t.Errorf("output = %q, want %q", output, "HelloWo\n")
	}
}

func TestFormatCommand_JSON(t *testing.T) {
	output, err := execute(t, formatCommand, "--json", "--capacity", "16", "--init", "T:", "--mode", "cat", "%.1f", "21.54")
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	var decoded struct {
		Content   string `json:"content"`
		Needed    int    `json:"needed"`
		Capacity  int    `json:"capacity"`
		Truncated bool   `json:"truncated"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if decoded.Content != "T:21.5" || decoded.Needed != 4 || decoded.Capacity != 16 || decoded.Truncated {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFormatCommand_Errors(t *testing.T) {
	if _, err := execute(t, formatCommand); err == nil {
		t.Error("expected error without FORMAT")
	}
	if _, err := execute(t, formatCommand, "%d", "seven"); err == nil {
		t.Error("expected error for a non-integer argument to an integer verb")
	}
	if _, err := execute(t, formatCommand, "--capacity", "5000", "%s", "x"); err == nil {
		t.Error("expected error for capacity above buffers.max_capacity")
	}
}
