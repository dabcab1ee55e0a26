// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the canonical name of a supported raster format (e.g. "JPEG").
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatBMP  Format = "BMP"
	FormatWEBP Format = "WEBP"
	FormatTIFF Format = "TIFF"
	FormatRAW  Format = "RAW"
	FormatHEIF Format = "HEIF"
)

// DefaultQuality is the encoder quality used for lossy formats when the
// request leaves quality unset.
const DefaultQuality = 85

// formatOrder fixes the order formats are listed in menus and tables.
var formatOrder = []Format{
	FormatJPEG,
	FormatPNG,
	FormatBMP,
	FormatWEBP,
	FormatTIFF,
	FormatRAW,
	FormatHEIF,
}

// formatExtensions maps each format to its recognized extensions. The first
// entry is the canonical extension used to name converted files.
var formatExtensions = map[Format][]string{
	FormatJPEG: {"jpg", "jpeg", "jpe", "jfif"},
	FormatPNG:  {"png"},
	FormatBMP:  {"bmp"},
	FormatWEBP: {"webp"},
	FormatTIFF: {"tiff", "tif"},
	FormatRAW:  {"raw", "arw", "cr2", "nef", "dng"},
	FormatHEIF: {"heif", "heic"},
}

// extensionFormat is the reverse index of formatExtensions.
var extensionFormat = func() map[string]Format {
	m := make(map[string]Format)
	for f, exts := range formatExtensions {
		for _, ext := range exts {
			if prev, dup := m[ext]; dup {
				panic(fmt.Sprintf("extension %q registered for both %s and %s", ext, prev, f))
			}
			m[ext] = f
		}
	}
	return m
}()

// Formats returns the supported formats in display order.
func Formats() []Format {
	out := make([]Format, len(formatOrder))
	copy(out, formatOrder)
	return out
}

// Extensions returns the recognized extensions for f, canonical first.
// It returns nil for an unknown format.
func (f Format) Extensions() []string {
	exts := formatExtensions[f]
	if exts == nil {
		return nil
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Canonical returns the extension (without dot) used for output files.
func (f Format) Canonical() string {
	exts := formatExtensions[f]
	if len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// Lossy reports whether the format takes a quality parameter.
func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWEBP
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatExtensions[f]
	return ok
}

// FormatForExtension returns the format owning ext. The lookup is
// case-insensitive and accepts an optional leading dot.
func FormatForExtension(ext string) (Format, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	f, ok := extensionFormat[ext]
	return f, ok
}

// ParseFormat resolves a user-supplied format name or extension
// ("webp", "JPG", ".tif") to a Format.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToUpper(strings.TrimSpace(s)))
	if name.Valid() {
		return name, nil
	}
	if f, ok := FormatForExtension(strings.TrimSpace(s)); ok {
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// IsSupportedFile reports whether path has an extension from the format
// table. Only the filename suffix is inspected.
func IsSupportedFile(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	_, ok := FormatForExtension(ext)
	return ok
}
