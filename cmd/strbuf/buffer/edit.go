// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/sealed"
	"github.com/bureau-foundation/stringref/lib/stringref"
	"github.com/bureau-foundation/stringref/lib/transcript"
)

// EditCommand returns the "edit" command.
func EditCommand(stdout io.Writer) *cli.Command {
	var (
		flags      bufferFlags
		initial    string
		recordPath string
		recipients []string
	)

	return &cli.Command{
		Name:    "edit",
		Summary: "Apply a sequence of edits to a bounded buffer",
		Description: `Apply edit operations to a buffer in order and report the
overflow result and content after each one.

Operations:
  copy:TEXT          replace the content (best effort)
  cat:TEXT           append as much as fits
  lcat:TEXT          append only if all of TEXT fits
  byte:C             append a single byte
  line:TEXT          append on a new line
  prepend:TEXT       insert at the start, only if it fits
  insert:POS:TEXT    insert at POS, only if it fits
  erase:POS[:COUNT]  remove COUNT bytes (default 1) at POS
  truncate:POS       cut the content to POS bytes
  set:INDEX:C        overwrite one byte
  strip              remove trailing whitespace
  backspace          remove the last byte
  skip               drop the first byte from the view
  clear              empty the buffer

With --record the steps are also written to a transcript file, which
"strbuf replay" prints back. A .zst or .lz4 extension compresses it.
A trailing .age seals it to the --recipient public keys; see
"strbuf keygen".`,
		Usage: "strbuf edit [flags] OP...",
		Examples: []cli.Example{
			{Description: "Atomic versus best-effort append", Command: "strbuf edit -n 8 cat:Hello lcat:World cat:World"},
			{Description: "Record a session", Command: "strbuf edit --record session.cbor.zst --init G28 line:ok"},
			{Description: "Record a sealed session", Command: "strbuf edit --record session.cbor.zst.age --recipient age1... copy:1234"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("edit", pflag.ContinueOnError)
			flags.addFlags(flagSet)
			flagSet.StringVar(&initial, "init", "", "initial buffer content")
			flagSet.StringVar(&recordPath, "record", "", "write the steps to this transcript file")
			flagSet.StringArrayVar(&recipients, "recipient", nil, "age public key to seal the transcript to (repeatable)")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one OP required")
			}

			for _, recipient := range recipients {
				if err := sealed.ParsePublicKey(recipient); err != nil {
					return fmt.Errorf("--recipient %q: %w", recipient, err)
				}
			}

			ref, err := flags.allocate()
			if err != nil {
				return err
			}
			if ref.Copy(initial) {
				logger.Warn("initial content truncated", "capacity", ref.Capacity())
			}

			steps, err := runEdits(&ref, args)
			if err != nil {
				return err
			}

			if recordPath != "" {
				options := transcript.Options{Recipients: recipients}
				if err := record(recordPath, options, steps); err != nil {
					return err
				}
				logger.Info("transcript written",
					"path", recordPath,
					"steps", len(steps),
					"recipients", len(recipients),
				)
			}

			if done, err := flags.output.Emit(stdout, steps); done {
				return err
			}

			writer := tabwriter.NewWriter(stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "OP\tOVERFLOW\tLEN/CAP\tCONTENT")
			for _, step := range steps {
				fmt.Fprintf(writer, "%s\t%t\t%d/%d\t%q\n", step.Op, step.Overflow, step.Length, step.Capacity, step.Content)
			}
			return writer.Flush()
		},
	}
}

// runEdits applies ops to ref in order and records the state after
// each. Stops at the first malformed op.
func runEdits(ref *stringref.Ref, ops []string) ([]transcript.Step, error) {
	steps := make([]transcript.Step, 0, len(ops))
	for _, op := range ops {
		overflow, err := applyOp(ref, op)
		if err != nil {
			return steps, fmt.Errorf("op %q: %w", op, err)
		}
		steps = append(steps, transcript.Step{
			Op:       op,
			Overflow: overflow,
			Content:  ref.String(),
			Length:   ref.Len(),
			Capacity: ref.Capacity(),
		})
	}
	return steps, nil
}

// applyOp parses and applies one operation. The bool is the overflow
// result for operations that have one; skip reports true when there
// was nothing to skip.
func applyOp(ref *stringref.Ref, op string) (bool, error) {
	name, operand, _ := strings.Cut(op, ":")

	switch name {
	case "copy":
		return ref.Copy(operand), nil
	case "cat":
		return ref.Cat(operand), nil
	case "lcat":
		return ref.Lcat(operand), nil
	case "line":
		return ref.CatLine(operand), nil
	case "prepend":
		return ref.Prepend(operand), nil
	case "byte":
		c, err := singleByte(operand)
		if err != nil {
			return false, err
		}
		return ref.CatByte(c), nil
	case "insert":
		position, text, err := positionAndRest(operand)
		if err != nil {
			return false, err
		}
		return ref.Insert(position, text), nil
	case "erase":
		position, rest, err := positionAndRest(operand)
		if err != nil {
			return false, err
		}
		count := 1
		if rest != "" {
			if count, err = strconv.Atoi(rest); err != nil {
				return false, fmt.Errorf("COUNT %q is not an integer", rest)
			}
		}
		ref.Erase(position, count)
		return false, nil
	case "truncate":
		position, err := strconv.Atoi(operand)
		if err != nil {
			return false, fmt.Errorf("POS %q is not an integer", operand)
		}
		ref.Truncate(position)
		return false, nil
	case "set":
		index, text, err := positionAndRest(operand)
		if err != nil {
			return false, err
		}
		c, err := singleByte(text)
		if err != nil {
			return false, err
		}
		ref.Set(index, c)
		return false, nil
	case "strip":
		ref.StripTrailingSpaces()
		return false, nil
	case "backspace":
		ref.Backspace()
		return false, nil
	case "skip":
		return !ref.Skip(), nil
	case "clear":
		ref.Clear()
		return false, nil
	}
	return false, fmt.Errorf("unknown operation %q", name)
}

// positionAndRest splits "POS[:REST]".
func positionAndRest(operand string) (int, string, error) {
	positionText, rest, _ := strings.Cut(operand, ":")
	position, err := strconv.Atoi(positionText)
	if err != nil {
		return 0, "", fmt.Errorf("POS %q is not an integer", positionText)
	}
	return position, rest, nil
}

func singleByte(text string) (byte, error) {
	if len(text) != 1 {
		return 0, fmt.Errorf("want exactly one byte, got %q", text)
	}
	return text[0], nil
}

func record(path string, options transcript.Options, steps []transcript.Step) error {
	writer, err := transcript.Create(path, options)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := writer.Write(step); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}
