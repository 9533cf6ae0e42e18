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

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stringref/cmd/strbuf/cli"
	"github.com/bureau-foundation/stringref/lib/stringref"
)

// Storage byte roles.
const (
	roleContent    = "content"
	roleTerminator = "terminator"
	roleTail       = "tail"
)

// cell is one storage byte.
type cell struct {
	Offset int    `json:"offset" cbor:"offset"`
	Byte   byte   `json:"byte" cbor:"byte"`
	Role   string `json:"role" cbor:"role"`
}

// layout is the machine-readable output of "strbuf inspect".
type layout struct {
	Content   stringref.Ref `json:"content" cbor:"content"`
	Length    int           `json:"length" cbor:"length"`
	Capacity  int           `json:"capacity" cbor:"capacity"`
	Truncated bool          `json:"truncated" cbor:"truncated"`
	Cells     []cell        `json:"cells" cbor:"cells"`
}

// InspectCommand returns the "inspect" command.
func InspectCommand(stdout io.Writer) *cli.Command {
	var (
		flags bufferFlags
		stale string
		color string
		width int
	)

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show how text lands in buffer storage",
		Description: `Copy TEXT into a buffer and print every storage byte with its
role: content, the terminator, or the tail beyond it.

The tail is whatever earlier content left behind. --stale fills the
buffer with other text first, to show that a shorter copy leaves old
bytes past the terminator (and why padded copies matter before a
constant-time comparison).`,
		Usage: "strbuf inspect [flags] TEXT",
		Examples: []cli.Example{
			{Description: "A truncated copy", Command: "strbuf inspect -n 8 HelloWorld"},
			{Description: "Stale bytes after a shorter copy", Command: "strbuf inspect -n 8 --stale 12345678 abc"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flags.addFlags(flagSet)
			flagSet.StringVar(&stale, "stale", "", "content copied in before TEXT")
			flagSet.StringVar(&color, "color", "auto", "auto, always, or never")
			flagSet.IntVar(&width, "width", 60, "maximum width of the content preview")
			return flagSet
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one TEXT argument required")
			}

			ref, err := flags.allocate()
			if err != nil {
				return err
			}
			ref.Copy(stale)
			truncated := ref.Copy(args[0])
			logger.Debug("copied", "length", ref.Len(), "truncated", truncated)

			result := describe(ref, truncated)
			if done, err := flags.output.Emit(stdout, result); done {
				return err
			}
			return render(stdout, result, color, width)
		},
	}
}

// describe classifies every storage byte of ref.
func describe(ref stringref.Ref, truncated bool) layout {
	storage := ref.UnsafeStorage()
	length := ref.Len()

	result := layout{
		Content:   ref,
		Length:    length,
		Capacity:  ref.Capacity(),
		Truncated: truncated,
		Cells:     make([]cell, len(storage)),
	}
	for offset, b := range storage {
		role := roleTail
		switch {
		case offset < length:
			role = roleContent
		case offset == length:
			role = roleTerminator
		}
		result.Cells[offset] = cell{Offset: offset, Byte: b, Role: role}
	}
	return result
}

// render writes the styled storage map.
func render(w io.Writer, result layout, color string, width int) error {
	renderer := lipgloss.NewRenderer(w)
	switch color {
	case "auto":
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown --color %q (want auto, always, or never)", color)
	}

	styles := map[string]lipgloss.Style{
		roleContent:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		roleTerminator: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		roleTail:       renderer.NewStyle().Faint(true),
	}
	label := renderer.NewStyle().Bold(true)

	status := "fits"
	if result.Truncated {
		status = "truncated"
	}
	preview := ansi.Truncate(strconv.Quote(result.Content.String()), max(width, 1), "…")
	fmt.Fprintf(w, "%s %s\n", label.Render("content:"), preview)
	fmt.Fprintf(w, "%s %d/%d (%s)\n", label.Render("length: "), result.Length, result.Capacity, status)
	fmt.Fprintf(w, "%s %s %s %s\n\n", label.Render("legend: "),
		styles[roleContent].Render(roleContent),
		styles[roleTerminator].Render(roleTerminator),
		styles[roleTail].Render(roleTail))

	offsetWidth := len(strconv.Itoa(len(result.Cells) - 1))
	for _, c := range result.Cells {
		row := fmt.Sprintf("%*d  0x%02x  %s  %s",
			offsetWidth, c.Offset, c.Byte, padRight(printable(c.Byte), 1), c.Role)
		fmt.Fprintln(w, styles[c.Role].Render(row))
	}
	return nil
}

// printable returns a one-column glyph for b.
func printable(b byte) string {
	switch {
	case b == 0:
		return "␀"
	case b >= 0x20 && b < 0x7f:
		return string(rune(b))
	default:
		return "·"
	}
}

func padRight(s string, width int) string {
	if padding := width - lipgloss.Width(s); padding > 0 {
		return s + strings.Repeat(" ", padding)
	}
	return s
}
