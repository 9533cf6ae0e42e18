// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package passcode derives and checks argon2id digests of short PINs.
//
// The PIN lives in a [secret.Buffer] for its whole lifetime. Digests
// are hex-encoded straight into a padded [stringref.String64], so the
// stored and derived digests have zeroed tails and can be compared with
// [stringref.String.ConstantTimeEquals] without leaking where they
// differ.
package passcode

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/bureau-foundation/stringref/lib/secret"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

const (
	// DigestSize is the argon2id output length in bytes. Its hex form
	// fills a String64 exactly.
	DigestSize = 32

	// SaltSize is the length of salts generated by [Hash].
	SaltSize = 16
)

// ErrNoPasscode is returned by [NewVerifier] when no digest is
// configured.
var ErrNoPasscode = errors.New("passcode: no digest configured")

// Params are the argon2id cost parameters.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// Digest is the hex form of an argon2id output.
type Digest = stringref.String64

// Derive computes the argon2id digest of pin under salt and writes its
// hex form into digest. The raw argon2 output is zeroed before Derive
// returns.
func Derive(digest *Digest, pin *secret.Buffer, salt []byte, params Params) {
	sum := argon2.IDKey(pin.Bytes(), salt, params.Time, params.MemoryKiB, params.Threads, DigestSize)
	defer secret.Zero(sum)

	storage := digest.UnsafeStorage()
	clear(storage)
	hex.Encode(storage, sum)
	digest.EnsureNullTerminated()
}

// Hash derives a digest for pin under a fresh random salt. Returns the
// hex digest and hex salt for the configuration file.
func Hash(pin *secret.Buffer, params Params) (digest, salt string, err error) {
	if pin.Len() == 0 {
		return "", "", errors.New("passcode: empty PIN")
	}

	saltBytes := make([]byte, SaltSize)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("passcode: generating salt: %w", err)
	}

	var derived Digest
	Derive(&derived, pin, saltBytes, params)
	defer clear(derived.UnsafeStorage())

	return derived.String(), hex.EncodeToString(saltBytes), nil
}

// Verifier checks PINs against a stored digest.
type Verifier struct {
	stored    Digest
	salt      []byte
	params    Params
	maxLength int
}

// NewVerifier parses a stored hex digest and salt. maxLength bounds
// the PIN length accepted by [Verifier.Verify]; zero means no bound
// beyond the PIN buffer's capacity.
func NewVerifier(digestHex, saltHex string, params Params, maxLength int) (*Verifier, error) {
	if digestHex == "" {
		return nil, ErrNoPasscode
	}
	if len(digestHex) != 2*DigestSize {
		return nil, fmt.Errorf("passcode: digest must be %d hex characters, got %d", 2*DigestSize, len(digestHex))
	}
	if _, err := hex.DecodeString(digestHex); err != nil {
		return nil, fmt.Errorf("passcode: parsing digest: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, fmt.Errorf("passcode: parsing salt: %w", err)
	}
	if len(salt) == 0 {
		return nil, errors.New("passcode: salt is empty")
	}

	verifier := &Verifier{salt: salt, params: params, maxLength: maxLength}
	// Derive emits lowercase hex; the configured digest may be either case.
	verifier.stored.CopyAndPad(strings.ToLower(digestHex))
	return verifier, nil
}

// Verify reports whether pin matches the stored digest. A PIN longer
// than the configured maximum is rejected after the same argon2 work a
// valid-length PIN costs.
func (v *Verifier) Verify(pin *secret.Buffer) bool {
	var derived Digest
	Derive(&derived, pin, v.salt, v.params)
	defer clear(derived.UnsafeStorage())

	match := v.stored.ConstantTimeEquals(&derived)
	if v.maxLength > 0 && pin.Len() > v.maxLength {
		return false
	}
	return match
}
