// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stringref

import (
	"testing"

	"github.com/bureau-foundation/stringref/lib/testutil"
)

func TestRef_Printf(t *testing.T) {
	ref, storage := newRef(t, 16, "previous")

	if got := ref.Printf("%d-%s", 42, "ok"); got != 5 {
		t.Errorf("Printf returned %d, want 5", got)
	}
	testutil.RequireTerminated(t, storage, "42-ok")
}

func TestRef_Printf_Truncates(t *testing.T) {
	ref, storage := newRef(t, 8, "")

	got := ref.Printf("%s", "HelloWorld")
	if got != 10 {
		t.Errorf("Printf returned %d, want the untruncated length 10", got)
	}
	if got <= ref.Capacity() {
		t.Error("truncation must be detectable by comparing against Capacity")
	}
	testutil.RequireTerminated(t, storage, "HelloWo")
}

func TestRef_Vprintf(t *testing.T) {
	ref, storage := newRef(t, 16, "")

	args := []any{"temp", 21.5}
	if got := ref.Vprintf("%s=%.1f", args); got != 9 {
		t.Errorf("Vprintf returned %d, want 9", got)
	}
	testutil.RequireTerminated(t, storage, "temp=21.5")
}

func TestRef_Catf(t *testing.T) {
	ref, storage := newRef(t, 8, "ab")

	if got := ref.Catf("%03d", 7); got != 3 {
		t.Errorf("Catf returned %d, want 3", got)
	}
	testutil.RequireTerminated(t, storage, "ab007")

	// Two bytes of room left: best effort keeps what fits.
	if got := ref.Catf("%d", 12345); got != 5 {
		t.Errorf("Catf returned %d, want 5", got)
	}
	testutil.RequireTerminated(t, storage, "ab00712")
}

func TestRef_Lcatf(t *testing.T) {
	ref, storage := newRef(t, 4, "abc")
	before := testutil.Snapshot(storage)

	if got := ref.Lcatf("%s", "x"); got != -1 {
		t.Errorf("Lcatf into a full buffer returned %d, want -1", got)
	}
	testutil.RequireUnchanged(t, before, storage, "Lcatf with no room")

	if got := ref.Lcatf("%s", ""); got != 0 {
		t.Errorf("Lcatf of empty output returned %d, want 0", got)
	}

	ref.Truncate(2)
	if got := ref.Lcatf("%s", "xyz"); got != 3 {
		t.Errorf("Lcatf returned %d, want 3", got)
	}
	testutil.RequireTerminated(t, storage, "abx")
}

func TestRef_CatLinef(t *testing.T) {
	ref, storage := newRef(t, 16, "")

	if got := ref.CatLinef("G%d", 28); got != 3 {
		t.Errorf("CatLinef on empty buffer returned %d, want 3", got)
	}
	if got := ref.CatLinef("ok"); got != 3 {
		t.Errorf("CatLinef returned %d, want 3 (newline included)", got)
	}
	testutil.RequireTerminated(t, storage, "G28\nok")
}

// Formatted output cut inside a multi-byte sequence drops the partial
// sequence rather than leaving a split rune at the end of the buffer.
func TestRef_Printf_TruncatesOnRuneBoundary(t *testing.T) {
	ref, storage := newRef(t, 5, "")
	if got := ref.Printf("a%s", "€"); got != 4 {
		t.Errorf("Printf returned %d, want 4", got)
	}
	testutil.RequireTerminated(t, storage, "a€", "exact fit")

	ref, storage = newRef(t, 4, "")
	if got := ref.Printf("a%s", "€"); got != 4 {
		t.Errorf("Printf returned %d, want 4", got)
	}
	testutil.RequireTerminated(t, storage, "a", "cut inside the euro sign")

	// Bytes that were never UTF-8 are kept as-is.
	ref, storage = newRef(t, 3, "")
	ref.Printf("%s", "\xff\xfe\xfd")
	testutil.RequireTerminated(t, storage, "\xff\xfe")
}

func TestRef_Lcatf_RuneDoesNotFit(t *testing.T) {
	ref, storage := newRef(t, 4, "ab")
	before := testutil.Snapshot(storage)

	if got := ref.Lcatf("%s", "€"); got != -1 {
		t.Errorf("Lcatf returned %d, want -1 when no complete rune fits", got)
	}
	testutil.RequireUnchanged(t, before, storage, "Lcatf with partial rune")
}

func TestRef_Printf_EmptyStorage(t *testing.T) {
	ref := NewRef(nil)

	if got := ref.Printf("%d", 1234); got != 4 {
		t.Errorf("Printf returned %d, want 4", got)
	}
	if got := ref.Catf("%d", 1234); got != 4 {
		t.Errorf("Catf returned %d, want 4", got)
	}
	if got := ref.Lcatf("%d", 1234); got != -1 {
		t.Errorf("Lcatf returned %d, want -1", got)
	}
}

// A partial rune that is written and then dropped must not leave bytes
// behind past the terminator.
func TestRef_Lcatf_PartialRuneLeavesTailAlone(t *testing.T) {
	ref, storage := newRef(t, 5, "ab")
	before := testutil.Snapshot(storage)

	if got := ref.Lcatf("%s", "€"); got != -1 {
		t.Errorf("Lcatf returned %d, want -1", got)
	}
	testutil.RequireUnchanged(t, before, storage, "Lcatf with two bytes of room")
}

func TestRef_Catf_PartialRuneLeavesTailAlone(t *testing.T) {
	ref, storage := newRef(t, 5, "a")

	if got := ref.Catf("b%s", "€"); got != 4 {
		t.Errorf("Catf returned %d, want 4", got)
	}
	testutil.RequireTerminated(t, storage, "ab")
	if storage[3] != testutil.GarbageByte {
		t.Errorf("storage[3] = %#x, want the original tail byte %#x", storage[3], testutil.GarbageByte)
	}
}
