// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/stringref/lib/stringref"
)

func testKey(fill byte) Key {
	var key Key
	for index := range key {
		key[index] = fill
	}
	return key
}

func TestSum_IgnoresTail(t *testing.T) {
	fingerprinter := New(testKey(1))

	var clean, dirty stringref.String16
	clean.CopyAndPad("1234")
	dirty.Copy("1234567890")
	dirty.Copy("1234")

	if fingerprinter.Sum(clean.Ref()) != fingerprinter.Sum(dirty.Ref()) {
		t.Error("bytes past the terminator changed the fingerprint")
	}
}

func TestSum_Deterministic(t *testing.T) {
	first := New(testKey(7)).SumBytes([]byte("G28 X0"))
	second := New(testKey(7)).SumBytes([]byte("G28 X0"))
	if first != second {
		t.Errorf("same key and content produced %s and %s", first, second)
	}
}

func TestSum_KeyMatters(t *testing.T) {
	content := []byte("1234")
	if New(testKey(1)).SumBytes(content) == New(testKey(2)).SumBytes(content) {
		t.Error("different keys produced the same fingerprint")
	}
}

func TestSum_ReuseResetsState(t *testing.T) {
	fingerprinter := New(testKey(3))
	first := fingerprinter.SumBytes([]byte("abc"))
	fingerprinter.SumBytes([]byte("something else"))
	again := fingerprinter.SumBytes([]byte("abc"))
	if first != again {
		t.Error("hasher state leaked between calls")
	}
}

func TestDigest_FormatParseRoundtrip(t *testing.T) {
	digest := New(testKey(9)).SumBytes([]byte("hello"))

	formatted := digest.String()
	if len(formatted) != 64 {
		t.Fatalf("formatted digest length = %d, want 64", len(formatted))
	}
	if !strings.HasPrefix(formatted, digest.Short()) || len(digest.Short()) != 16 {
		t.Errorf("Short() = %q is not a 16-character prefix of %q", digest.Short(), formatted)
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != digest {
		t.Error("roundtrip mismatch")
	}
}

func TestParseDigest_Invalid(t *testing.T) {
	for _, input := range []string{"", "zz", strings.Repeat("ab", 31), strings.Repeat("ab", 33)} {
		if _, err := ParseDigest(input); err == nil {
			t.Errorf("ParseDigest(%q) succeeded, want error", input)
		}
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey(strings.Repeat("01", 32))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if key != testKey(1) {
		t.Error("parsed key mismatch")
	}
	if _, err := ParseKey("01"); err == nil {
		t.Error("expected error for short key")
	}
}

func TestNewKey(t *testing.T) {
	first, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	second, err := NewKey()
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	if first == second {
		t.Error("two random keys were identical")
	}
}
