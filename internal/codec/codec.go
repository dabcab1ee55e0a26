// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec decodes source images and encodes them into the supported
// target formats. Decoders are selected by content sniffing; encoders are
// looked up by target format.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/gen2brain/heic"
	_ "github.com/gen2brain/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pdiddy/fasty/pkg/types"
)

// ErrNoEncoder indicates the target format can be read but not written.
var ErrNoEncoder = errors.New("no encoder available for format")

// Decoded is a source image held in memory together with the metadata
// found in its container.
type Decoded struct {
	Image image.Image

	// Format is the decoder name reported by image.Decode ("jpeg", "png", ...).
	Format string

	Metadata Metadata
}

// Decoder reads a source file into memory.
type Decoder interface {
	Decode(path string) (Decoded, error)
}

// FileDecoder decodes files from the local filesystem. The whole file is
// read and closed before decoding starts.
type FileDecoder struct{}

// Decode reads path, identifies its format from content and decodes it.
func (FileDecoder) Decode(path string) (Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Decoded{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (Decoded, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{
		Image:    img,
		Format:   name,
		Metadata: ExtractMetadata(name, data),
	}, nil
}

// Registry maps target formats to encoders.
type Registry struct {
	encoders map[types.Format]Encoder
}

// NewRegistry returns a registry with the built-in encoders. RAW and HEIF
// have decoders or extension entries only and are left unregistered.
func NewRegistry() *Registry {
	return &Registry{
		encoders: map[types.Format]Encoder{
			types.FormatJPEG: EncoderFunc(encodeJPEG),
			types.FormatPNG:  EncoderFunc(encodePNG),
			types.FormatBMP:  EncoderFunc(encodeBMP),
			types.FormatTIFF: EncoderFunc(encodeTIFF),
			types.FormatWEBP: EncoderFunc(encodeWEBP),
		},
	}
}

// Register installs or replaces the encoder for f.
func (r *Registry) Register(f types.Format, e Encoder) {
	r.encoders[f] = e
}

// EncoderFor returns the encoder for f, or ErrNoEncoder.
func (r *Registry) EncoderFor(f types.Format) (Encoder, error) {
	e, ok := r.encoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEncoder, f)
	}
	return e, nil
}

// CanEncode reports whether f has a registered encoder.
func (r *Registry) CanEncode(f types.Format) bool {
	_, ok := r.encoders[f]
	return ok
}
