// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/stringref/lib/stringref"
)

// Size is the length in bytes of keys and digests.
const Size = 32

// Key is a BLAKE3 key.
type Key [Size]byte

// Digest is a keyed BLAKE3 digest of buffer content.
type Digest [Size]byte

// NewKey returns a random key.
func NewKey() (Key, error) {
	var key Key
	if _, err := rand.Read(key[:]); err != nil {
		return key, fmt.Errorf("generating fingerprint key: %w", err)
	}
	return key, nil
}

// ParseKey parses a 64-character hex key.
func ParseKey(hexString string) (Key, error) {
	var key Key
	if err := decodeHex(key[:], hexString); err != nil {
		return key, fmt.Errorf("parsing fingerprint key: %w", err)
	}
	return key, nil
}

// Fingerprinter hashes buffer content under a fixed key.
type Fingerprinter struct {
	hasher *blake3.Hasher
}

// New returns a Fingerprinter keyed with key.
func New(key Key) *Fingerprinter {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails on a key of the wrong length, which the
		// Key type rules out.
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &Fingerprinter{hasher: hasher}
}

// Sum returns the digest of ref's content. Only the bytes before the
// terminator contribute, so stale bytes in the tail do not change the
// fingerprint.
func (f *Fingerprinter) Sum(ref stringref.Ref) Digest {
	return f.SumBytes(ref.Bytes())
}

// SumBytes returns the digest of content.
func (f *Fingerprinter) SumBytes(content []byte) Digest {
	f.hasher.Reset()
	f.hasher.Write(content)

	var digest Digest
	f.hasher.Sum(digest[:0])
	return digest
}

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 8 bytes of the digest as hex, enough to
// tell values apart in log output.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:8])
}

// ParseDigest parses a hex-encoded digest. Returns an error if the
// string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	if err := decodeHex(digest[:], hexString); err != nil {
		return digest, fmt.Errorf("parsing fingerprint digest: %w", err)
	}
	return digest, nil
}

func decodeHex(destination []byte, hexString string) error {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return err
	}
	if len(decoded) != len(destination) {
		return fmt.Errorf("got %d bytes, want %d", len(decoded), len(destination))
	}
	copy(destination, decoded)
	return nil
}
