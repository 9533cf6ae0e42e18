// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for strbuf.
//
// Configuration is loaded from a single file specified by either the
// STRBUF_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Commands that do not need configuration run on [Default].
//
// Files ending in .json or .jsonc are accepted as well as YAML: their
// comments and trailing commas are stripped first, and the result is
// parsed as YAML, of which JSON is a subset.
//
// The file may carry environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production is stricter by default: it
// raises the argon2 memory floor.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// This package depends on no other strbuf packages.
package config
