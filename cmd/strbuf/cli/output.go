// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/lib/codec"
)

// Output adds --json and --cbor machine output to a command. Commands
// embed or hold one, register its flags, and call [Output.Emit] before
// falling through to their human-readable formatting:
//
//	if done, err := output.Emit(stdout, result); done {
//	    return err
//	}
type Output struct {
	JSON bool
	CBOR bool

	// Diagnostic prints --cbor output in CBOR diagnostic notation
	// instead of raw bytes. Raw CBOR is never written to a terminal.
	Diagnostic bool
}

// AddFlags registers --json, --cbor and --cbor-diag on flagSet.
func (o *Output) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.BoolVar(&o.JSON, "json", false, "output as JSON")
	flagSet.BoolVar(&o.CBOR, "cbor", false, "output as deterministic CBOR")
	flagSet.BoolVar(&o.Diagnostic, "cbor-diag", false, "output CBOR in diagnostic notation (implies --cbor)")
}

// Emit writes result to w in the selected machine format. Returns
// (true, nil) on success, (true, err) on failure, or (false, nil) when
// neither flag is set and the caller should proceed with text output.
//
// Nil slices are normalized to empty slices, so JSON output never
// contains null where a list is expected.
func (o *Output) Emit(w io.Writer, result any) (bool, error) {
	cbor := o.CBOR || o.Diagnostic
	switch {
	case o.JSON && cbor:
		return true, errors.New("--json and --cbor are mutually exclusive")
	case o.JSON:
		return true, WriteJSON(w, normalizeNilSlice(result))
	case cbor:
		return true, writeCBOR(w, normalizeNilSlice(result), o.Diagnostic || writesToTerminal(w))
	}
	return false, nil
}

// writeCBOR encodes value and writes either the raw bytes or, when
// diagnostic is set, their diagnostic notation followed by a newline.
func writeCBOR(w io.Writer, value any, diagnostic bool) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding CBOR: %w", err)
	}
	if !diagnostic {
		_, err = w.Write(data)
		return err
	}

	notation, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("formatting CBOR diagnostic notation: %w", err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}

// WriteJSON marshals value as indented JSON and writes it to w.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
