// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package buffer implements the strbuf commands that drive a bounded
// buffer directly: format, edit, inspect, and replay.
//
// Every command allocates one buffer of --capacity bytes (default
// buffers.default_capacity from the configuration, limited by
// buffers.max_capacity) and reports overflow the way the library does:
// as a flag next to the content, never as an error.
package buffer
