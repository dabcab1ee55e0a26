// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"golang.org/x/image/tiff"

	"github.com/pdiddy/fasty/pkg/types"
)

// EncodeOptions carries the per-batch encoder parameters.
type EncodeOptions struct {
	// Quality is used by lossy encoders; zero selects types.DefaultQuality.
	Quality int

	// Metadata is embedded by encoders whose container supports it.
	// The zero value writes no metadata.
	Metadata Metadata
}

func (o EncodeOptions) quality() int {
	if o.Quality <= 0 {
		return types.DefaultQuality
	}
	if o.Quality > 100 {
		return 100
	}
	return o.Quality
}

// Encoder writes an image in one target format.
type Encoder interface {
	Encode(w io.Writer, img image.Image, opts EncodeOptions) error
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(w io.Writer, img image.Image, opts EncodeOptions) error

// Encode calls f.
func (f EncoderFunc) Encode(w io.Writer, img image.Image, opts EncodeOptions) error {
	return f(w, img, opts)
}

func encodeJPEG(w io.Writer, img image.Image, opts EncodeOptions) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(opts.quality())); err != nil {
		return fmt.Errorf("encoding jpeg: %w", err)
	}
	out, err := InjectJPEG(buf.Bytes(), opts.Metadata)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func encodePNG(w io.Writer, img image.Image, opts EncodeOptions) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	out, err := InjectPNG(buf.Bytes(), opts.Metadata)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func encodeBMP(w io.Writer, img image.Image, _ EncodeOptions) error {
	if err := imaging.Encode(w, img, imaging.BMP); err != nil {
		return fmt.Errorf("encoding bmp: %w", err)
	}
	return nil
}

// encodeTIFF writes a losslessly compressed TIFF. The x/image writer
// implements Deflate but not LZW, so Deflate with the horizontal
// predictor is used.
func encodeTIFF(w io.Writer, img image.Image, _ EncodeOptions) error {
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(w, img, opts); err != nil {
		return fmt.Errorf("encoding tiff: %w", err)
	}
	return nil
}

func encodeWEBP(w io.Writer, img image.Image, opts EncodeOptions) error {
	if err := webp.Encode(w, img, webp.Options{Quality: opts.quality(), Method: 4}); err != nil {
		return fmt.Errorf("encoding webp: %w", err)
	}
	return nil
}
