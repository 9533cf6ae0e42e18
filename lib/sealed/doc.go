// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts streams with age so that recorded buffer
// contents can be kept at rest without exposing them. It wraps
// filippo.io/age for the operations strbuf needs: generate x25519
// keypairs, stream-encrypt to one or more recipients, and
// stream-decrypt with a private key.
//
// Private keys are held in [secret.Buffer] values backed by mmap memory
// outside the Go heap (locked against swap, excluded from core dumps,
// zeroed on Close). Sealed files are identified by the ".age" suffix;
// see [IsSealed].
package sealed
