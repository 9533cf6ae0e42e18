// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/stringref/lib/config"
	"github.com/bureau-foundation/stringref/lib/testutil"
)

var testKey = strings.Repeat("2a", 32)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	var stdout, stderr bytes.Buffer
	err := Command(strings.NewReader(stdin), &stdout, &stderr).Execute(context.Background(), args)
	return strings.TrimSpace(stdout.String()), err
}

func TestFingerprint_TextAndSecretAgree(t *testing.T) {
	fromText, err := run(t, "", "--key", testKey, "2580")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}
	fromSecret, err := run(t, "2580\n", "--key", testKey, "--secret")
	if err != nil {
		t.Fatalf("fingerprint --secret failed: %v", err)
	}

	if len(fromText) != 64 {
		t.Errorf("digest = %q, want 64 hex characters", fromText)
	}
	if fromText != fromSecret {
		t.Errorf("TEXT and --secret disagree: %s vs %s", fromText, fromSecret)
	}
}

func TestFingerprint_ConfiguredKey(t *testing.T) {
	configPath := testutil.WriteFile(t, "strbuf.yaml", "fingerprint:\n  key: \""+testKey+"\"\n")

	fromConfig, err := run(t, "", "--config", configPath, "--short", "2580")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}
	fromFlag, err := run(t, "", "--key", testKey, "2580")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}

	if len(fromConfig) != 16 || !strings.HasPrefix(fromFlag, fromConfig) {
		t.Errorf("--short %q is not the prefix of %q", fromConfig, fromFlag)
	}
}

func TestFingerprint_EphemeralKey(t *testing.T) {
	output, err := run(t, "", "--json", "2580")
	if err != nil {
		t.Fatalf("fingerprint failed: %v", err)
	}

	var decoded result
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if !decoded.Ephemeral {
		t.Error("ephemeral = false without a configured key")
	}
	if !strings.HasPrefix(decoded.Digest, decoded.Short) {
		t.Errorf("short %q is not a prefix of %q", decoded.Short, decoded.Digest)
	}
}

func TestFingerprint_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"no value", "", nil},
		{"both sources", "2580\n", []string{"--secret", "2580"}},
		{"bad key", "", []string{"--key", "abcd", "2580"}},
		{"too long", "", []string{strings.Repeat("x", 257)}},
	}
	for _, test := range tests {
		if _, err := run(t, test.stdin, test.args...); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}
