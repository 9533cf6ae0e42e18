// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transcript records buffer edit sessions as CBOR sequences.
//
// Each [Step] is one operation applied to a buffer together with the
// buffer state it left behind. A transcript file is a plain CBOR
// sequence (RFC 8742), optionally compressed and optionally sealed.
// The file extension selects both: a trailing ".age" seals the file
// with age, and the extension before it selects the compression, ".zst"
// for zstd and ".lz4" for LZ4. Any other extension is stored
// uncompressed. "session.cbor.zst.age" is compressed, then sealed.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/stringref/lib/codec"
	"github.com/bureau-foundation/stringref/lib/sealed"
	"github.com/bureau-foundation/stringref/lib/secret"
)

// Step is one recorded buffer operation.
type Step struct {
	// Op is the operation as given on the command line, e.g. "cat:abc".
	Op string `cbor:"op" json:"op"`

	// Overflow is the operation's overflow result.
	Overflow bool `cbor:"overflow" json:"overflow"`

	// Content, Length, and Capacity describe the buffer after the
	// operation.
	Content  string `cbor:"content" json:"content"`
	Length   int    `cbor:"length" json:"length"`
	Capacity int    `cbor:"capacity" json:"capacity"`
}

// Compression identifies how a transcript file is compressed.
type Compression int

const (
	None Compression = iota
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor returns the compression selected by path's extension,
// ignoring any sealed suffix.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(sealed.TrimSuffix(path))) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// Options carries the keys for sealed transcripts.
type Options struct {
	// Recipients are the age public keys a sealed transcript is
	// encrypted to. Required when creating a ".age" path.
	Recipients []string

	// Identity is the age private key used to open a sealed transcript.
	// Required when reading a ".age" path. It is borrowed, not closed.
	Identity *secret.Buffer
}

// Writer appends steps to a transcript file.
type Writer struct {
	file       *os.File
	seal       io.WriteCloser
	compressor io.WriteCloser
	encoder    *codec.Encoder
}

// Create creates or truncates the transcript at path.
func Create(path string, options Options) (*Writer, error) {
	isSealed := sealed.IsSealed(path)
	if isSealed && len(options.Recipients) == 0 {
		return nil, fmt.Errorf("sealed transcript %s needs at least one recipient", path)
	}
	if !isSealed && len(options.Recipients) > 0 {
		return nil, fmt.Errorf("transcript %s has recipients but no %s suffix", path, sealed.Suffix)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("creating transcript: %w", err)
	}

	writer := &Writer{file: file}
	var sink io.Writer = file
	if isSealed {
		seal, err := sealed.NewWriter(file, options.Recipients)
		if err != nil {
			file.Close()
			return nil, err
		}
		writer.seal = seal
		sink = seal
	}

	switch CompressionFor(path) {
	case Zstd:
		encoder, err := zstd.NewWriter(sink)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		writer.compressor = encoder
		sink = encoder
	case LZ4:
		compressor := lz4.NewWriter(sink)
		writer.compressor = compressor
		sink = compressor
	}

	writer.encoder = codec.NewEncoder(sink)
	return writer, nil
}

// Write appends one step.
func (w *Writer) Write(step Step) error {
	if err := w.encoder.Encode(step); err != nil {
		return fmt.Errorf("writing transcript step: %w", err)
	}
	return nil
}

// Close flushes the compressor and seal, innermost first, and closes
// the file.
func (w *Writer) Close() error {
	var errs []error
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("flushing %s stream: %w", CompressionFor(w.file.Name()), err))
		}
	}
	if w.seal != nil {
		if err := w.seal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("finalizing age encryption: %w", err))
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Read returns every step in the transcript at path.
func Read(path string, options Options) ([]Step, error) {
	if sealed.IsSealed(path) && options.Identity == nil {
		return nil, fmt.Errorf("sealed transcript %s needs an identity to open", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer file.Close()

	var source io.Reader = file
	if sealed.IsSealed(path) {
		source, err = sealed.NewReader(file, options.Identity)
		if err != nil {
			return nil, fmt.Errorf("opening sealed transcript: %w", err)
		}
	}

	switch CompressionFor(path) {
	case Zstd:
		decoder, err := zstd.NewReader(source)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer decoder.Close()
		source = decoder
	case LZ4:
		source = lz4.NewReader(source)
	}

	decoder := codec.NewDecoder(source)
	var steps []Step
	for {
		var step Step
		err := decoder.Decode(&step)
		if errors.Is(err, io.EOF) {
			return steps, nil
		}
		if err != nil {
			return steps, fmt.Errorf("reading transcript step %d: %w", len(steps)+1, err)
		}
		steps = append(steps, step)
	}
}
