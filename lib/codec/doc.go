// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// buffer snapshots and CLI machine output.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical snapshot always produces identical bytes, so encoded
// snapshots can be compared or fingerprinted directly.
//
// Buffer types ([stringref.String] and [stringref.Ref]) implement
// encoding.TextMarshaler, and the modes here are configured to carry
// such types as CBOR text strings. Decoding a text string into a
// String stores as much as fits and fails with [stringref.ErrOverflow]
// when the input is longer than the buffer. The decoder rejects text
// strings that are not valid UTF-8, so buffers holding arbitrary bytes
// should be snapshotted as []byte fields instead.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(os.Stdout)
//	decoder := codec.NewDecoder(os.Stdin)
//
// Struct tags: types that are only ever CBOR use `cbor` tags; types
// that are also written as JSON by the CLI use `json` tags, which
// fxamacker/cbor reads as a fallback. Never both on one field.
package codec
