// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for stringref packages.
//
// [RequireTerminated] checks the one invariant every buffer operation
// must preserve: the storage holds a zero byte within capacity and the
// bytes before it are the expected content. [RequireUnchanged] checks
// the atomic half of the overflow contract by comparing a whole storage
// snapshot taken with [Snapshot] before the call.
//
// [Garbage] returns storage pre-filled with a non-zero pattern, so that
// tests notice operations that rely on bytes past the terminator being
// zero.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path, for config and secret-file tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package operates on plain byte slices and has no stringref
// dependencies, so the stringref package's own tests can import it.
package testutil
