// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

// formatResult is the machine-readable output of "strbuf format".
type formatResult struct {
	Mode      string        `json:"mode" cbor:"mode"`
	Content   stringref.Ref `json:"content" cbor:"content"`
	Length    int           `json:"length" cbor:"length"`
	Capacity  int           `json:"capacity" cbor:"capacity"`
	Needed    int           `json:"needed" cbor:"needed"`
	Truncated bool          `json:"truncated" cbor:"truncated"`
}

// FormatCommand returns the "format" command.
func FormatCommand(stdout io.Writer) *cli.Command {
	var (
		flags   bufferFlags
		mode    string
		initial string
	)

	return &cli.Command{
		Name:    "format",
		Summary: "Format arguments into a bounded buffer",
		Description: `Format arguments into a buffer of fixed capacity, the way a
device firmware builds a reply without allocating.

Arguments are converted to match their verbs: %d takes an integer,
%f a number, %t a boolean, and everything else a string.

Modes:
  print   replace the content (the default)
  cat     append as much as fits
  lcat    append, leaving the buffer untouched if nothing fits
  line    append on a new line

Output that did not fit is reported as truncated, with the length the
complete output would have needed.`,
		Usage: "strbuf format [flags] FORMAT [ARGS...]",
		Examples: []cli.Example{
			{Description: "Truncate to seven bytes", Command: "strbuf format -n 7 %s%s Hello World"},
			{Description: "Append a temperature reading", Command: "strbuf format --init 'T:' --mode cat %.1f 21.5"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("format", pflag.ContinueOnError)
			flags.addFlags(flagSet)
			flagSet.StringVar(&mode, "mode", "print", "print, cat, lcat, or line")
			flagSet.StringVar(&initial, "init", "", "initial buffer content")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("FORMAT argument required")
			}
			format := args[0]
			values, err := convertArgs(format, args[1:])
			if err != nil {
				return err
			}

			ref, err := flags.allocate()
			if err != nil {
				return err
			}
			if ref.Copy(initial) {
				logger.Warn("initial content truncated", "capacity", ref.Capacity())
			}

			result, err := runFormat(ref, mode, format, values)
			if err != nil {
				return err
			}

			if done, err := flags.output.Emit(stdout, result); done {
				return err
			}

			fmt.Fprintln(stdout, ref.String())
			if result.Truncated {
				logger.Warn("output truncated",
					"needed", result.Needed,
					"capacity", result.Capacity,
				)
			}
			return nil
		},
	}
}

// runFormat applies one formatting mode to ref.
func runFormat(ref stringref.Ref, mode, format string, values []any) (formatResult, error) {
	before := ref.Len()
	result := formatResult{Mode: mode, Content: ref, Capacity: ref.Capacity()}

	switch mode {
	case "print":
		result.Needed = ref.Vprintf(format, values)
		result.Truncated = result.Needed > ref.Capacity()
	case "cat":
		result.Needed = ref.Vcatf(format, values)
		result.Truncated = before+result.Needed > ref.Capacity()
	case "lcat":
		result.Needed = ref.Lcatf(format, values...)
		result.Truncated = result.Needed < 0 || before+result.Needed > ref.Capacity()
	case "line":
		result.Needed = ref.CatLinef(format, values...)
		result.Truncated = before+result.Needed > ref.Capacity()
	default:
		return result, fmt.Errorf("unknown --mode %q (want print, cat, lcat, or line)", mode)
	}

	result.Length = ref.Len()
	return result, nil
}
