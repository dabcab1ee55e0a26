// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the batch image conversion loop. Each source
// file is converted independently and in order; a failing item is
// recorded and the batch moves on.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/fasty/internal/codec"
	"github.com/pdiddy/fasty/pkg/types"
)

var (
	// ErrUnreadableImage indicates the source could not be read or its
	// format was not recognized by any decoder.
	ErrUnreadableImage = errors.New("unreadable or unsupported image")

	// ErrEncodeFailure indicates writing the target format failed.
	ErrEncodeFailure = errors.New("encode failed")
)

// maxReasonLen bounds the failure reason printed in the transcript.
const maxReasonLen = 60

// Encoders looks up the encoder for a target format.
type Encoders interface {
	EncoderFor(f types.Format) (codec.Encoder, error)
}

// Result holds the outcomes of a batch run in input order and their
// aggregate counts.
type Result struct {
	Outcomes []types.Outcome
	Summary  types.Summary
}

// ProgressFunc is called after each item with the number of items
// processed so far and the batch size.
type ProgressFunc func(done, total int)

// Converter runs conversion requests against a decoder and a set of
// encoders.
type Converter struct {
	decoder  codec.Decoder
	encoders Encoders
	printer  Printer
	progress ProgressFunc
}

// Option configures a Converter.
type Option func(*Converter)

// WithDecoder replaces the filesystem decoder.
func WithDecoder(d codec.Decoder) Option {
	return func(c *Converter) { c.decoder = d }
}

// WithEncoders replaces the built-in encoder registry.
func WithEncoders(e Encoders) Option {
	return func(c *Converter) { c.encoders = e }
}

// WithPrinter replaces the plain transcript printer.
func WithPrinter(p Printer) Option {
	return func(c *Converter) { c.printer = p }
}

// WithProgress registers a callback invoked after every item.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) { c.progress = fn }
}

// New returns a Converter using the filesystem decoder and the built-in
// encoders unless overridden.
func New(opts ...Option) *Converter {
	c := &Converter{
		decoder:  codec.FileDecoder{},
		encoders: codec.NewRegistry(),
		printer:  PlainPrinter{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ConvertFile converts one source file and returns its outcome. It never
// returns an error: every failure is captured in the outcome.
func (c *Converter) ConvertFile(src string, req types.Request) types.Outcome {
	out, err := c.convert(src, req)
	if err != nil {
		slog.Debug("conversion failed", "source", src, "format", req.Format, "error", err)
		return types.Outcome{
			Status: types.OutcomeFailure,
			Source: src,
			Reason: truncate(err.Error(), maxReasonLen),
			Err:    err,
		}
	}
	return types.Outcome{
		Status: types.OutcomeSuccess,
		Source: src,
		Output: out,
	}
}

func (c *Converter) convert(src string, req types.Request) (string, error) {
	dec, err := c.decoder.Decode(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadableImage, err)
	}

	enc, err := c.encoders.EncoderFor(req.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFailure, err)
	}

	img := dec.Image
	if req.Format == types.FormatJPEG && codec.NeedsFlatten(img) {
		img = codec.FlattenAlpha(img)
	}

	opts := codec.EncodeOptions{}
	if req.Format.Lossy() {
		opts.Quality = req.EffectiveQuality()
	}
	if req.PreserveMetadata {
		opts.Metadata = dec.Metadata
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, img, opts); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFailure, err)
	}

	target, err := ResolveOutputPath(req.DestDir, src, req.Format, req.Overwrite)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeFailure, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %w", ErrEncodeFailure, target, err)
	}
	return target, nil
}

// ConvertBatch converts every path in order, printing a transcript line
// per item and a closing summary to w. The destination directory is
// created if missing. One outcome is returned per input path.
func (c *Converter) ConvertBatch(paths []string, req types.Request, w io.Writer) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{Outcomes: make([]types.Outcome, 0, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}

	mkErr := os.MkdirAll(req.DestDir, 0o755)

	for i, p := range paths {
		var o types.Outcome
		if mkErr != nil {
			o = types.Outcome{
				Status: types.OutcomeFailure,
				Source: p,
				Reason: truncate(mkErr.Error(), maxReasonLen),
				Err:    fmt.Errorf("%w: creating %s: %w", ErrEncodeFailure, req.DestDir, mkErr),
			}
		} else {
			o = c.ConvertFile(p, req)
		}
		result.Outcomes = append(result.Outcomes, o)
		result.Summary.Add(o)
		c.printer.Outcome(w, o)
		if c.progress != nil {
			c.progress(i+1, len(paths))
		}
	}

	c.printer.Summary(w, result.Summary)
	return result, nil
}

// ResolveOutputPath returns the path a converted copy of src is written to
// inside destDir. Without overwrite, an existing file is never reused:
// "_1", "_2", ... is appended to the base name until a free path is found.
// The source file itself is never a valid target, even with overwrite.
func ResolveOutputPath(destDir, src string, f types.Format, overwrite bool) (string, error) {
	ext := f.Canonical()
	if ext == "" {
		return "", fmt.Errorf("unsupported target format %q", f)
	}
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	target := filepath.Join(destDir, name+"."+ext)
	for n := 1; ; n++ {
		next := filepath.Join(destDir, fmt.Sprintf("%s_%d.%s", name, n, ext))
		if sameFile(target, src) {
			target = next
			continue
		}
		if overwrite {
			return target, nil
		}
		_, err := os.Lstat(target)
		if os.IsNotExist(err) {
			return target, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", target, err)
		}
		target = next
	}
}

// sameFile reports whether a and b name the same file, by absolute path
// or, when both exist, by identity (symlinks, case-folding filesystems).
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
