// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes keyed BLAKE3 digests of buffer content.
//
// A fingerprint identifies a value in logs and CLI output without
// revealing it: two PIN buffers with the same content produce the same
// fingerprint under the same key, but the fingerprint cannot be
// reversed, and without the key it cannot be brute-forced from the
// small PIN space. Keys come from configuration (fingerprint.key) or
// are generated per process with [NewKey].
//
// [Fingerprinter] reuses one keyed hasher across calls via Reset, so
// hashing a [stringref.Ref] does not allocate a new hasher each time.
// A Fingerprinter is not safe for concurrent use.
//
// Digests are formatted as lowercase hex ([Digest.String]) and parsed
// back with [ParseDigest]. [Digest.Short] gives the 16-character prefix
// used in log lines.
package fingerprint
