// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/lib/codec"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

type outputFixture struct {
	Content   stringref.String16 `json:"content" cbor:"content"`
	Truncated bool               `json:"truncated" cbor:"truncated"`
}

func TestOutput_NoFlags(t *testing.T) {
	var output Output
	var buffer bytes.Buffer

	done, err := output.Emit(&buffer, "ignored")
	if done || err != nil {
		t.Errorf("Emit() = (%v, %v), want (false, nil)", done, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("Emit wrote %q without a format flag", buffer.String())
	}
}

func TestOutput_JSON(t *testing.T) {
	var output Output
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	output.AddFlags(flagSet)
	if err := flagSet.Parse([]string{"--json"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var fixture outputFixture
	fixture.Content.Copy("G28 X0")
	fixture.Truncated = true

	var buffer bytes.Buffer
	done, err := output.Emit(&buffer, fixture)
	if !done || err != nil {
		t.Fatalf("Emit() = (%v, %v), want (true, nil)", done, err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buffer.String())
	}
	if decoded["content"] != "G28 X0" || decoded["truncated"] != true {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestOutput_JSON_NilSlice(t *testing.T) {
	output := Output{JSON: true}
	var buffer bytes.Buffer

	var steps []string
	if _, err := output.Emit(&buffer, steps); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if got := bytes.TrimSpace(buffer.Bytes()); string(got) != "[]" {
		t.Errorf("nil slice encoded as %s, want []", got)
	}
}

func TestOutput_CBOR(t *testing.T) {
	output := Output{CBOR: true}

	var fixture outputFixture
	fixture.Content.Copy("M115")

	var buffer bytes.Buffer
	if done, err := output.Emit(&buffer, fixture); !done || err != nil {
		t.Fatalf("Emit() = (%v, %v), want (true, nil)", done, err)
	}

	var decoded outputFixture
	if err := codec.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Content.Equals("M115") || decoded.Truncated {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestOutput_CBORDiagnostic(t *testing.T) {
	var output Output
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	output.AddFlags(flagSet)
	if err := flagSet.Parse([]string{"--cbor-diag"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var fixture outputFixture
	fixture.Content.Copy("M115")

	var buffer bytes.Buffer
	if done, err := output.Emit(&buffer, fixture); !done || err != nil {
		t.Fatalf("Emit() = (%v, %v), want (true, nil)", done, err)
	}
	got := buffer.String()
	if !strings.Contains(got, `"content": "M115"`) || !strings.Contains(got, `"truncated": false`) {
		t.Errorf("diagnostic notation = %q", got)
	}

	output.JSON = true
	if _, err := output.Emit(&bytes.Buffer{}, fixture); err == nil {
		t.Error("expected --json with --cbor-diag to be rejected")
	}
}

func TestOutput_MutuallyExclusive(t *testing.T) {
	output := Output{JSON: true, CBOR: true}
	done, err := output.Emit(&bytes.Buffer{}, 1)
	if !done || err == nil {
		t.Errorf("Emit() = (%v, %v), want (true, error)", done, err)
	}
}
