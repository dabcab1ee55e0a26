// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCanonical(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJPEG, "jpg"},
		{FormatPNG, "png"},
		{FormatBMP, "bmp"},
		{FormatWEBP, "webp"},
		{FormatTIFF, "tiff"},
		{FormatRAW, "raw"},
		{FormatHEIF, "heif"},
		{Format("GIF"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Canonical())
		})
	}
}

func TestEveryExtensionMapsToOneFormat(t *testing.T) {
	seen := map[string]Format{}
	for _, f := range Formats() {
		exts := f.Extensions()
		require.NotEmpty(t, exts, "format %s has no extensions", f)
		for _, ext := range exts {
			prev, dup := seen[ext]
			assert.False(t, dup, "extension %q in %s and %s", ext, prev, f)
			seen[ext] = f

			got, ok := FormatForExtension(ext)
			require.True(t, ok)
			assert.Equal(t, f, got)
		}
	}
}

func TestFormatForExtension(t *testing.T) {
	tests := []struct {
		ext    string
		want   Format
		wantOK bool
	}{
		{"jpg", FormatJPEG, true},
		{".JFIF", FormatJPEG, true},
		{"Tif", FormatTIFF, true},
		{".nef", FormatRAW, true},
		{"HEIC", FormatHEIF, true},
		{"txt", "", false},
		{"", "", false},
		{".", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := FormatForExtension(tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"JPEG", FormatJPEG, false},
		{"webp", FormatWEBP, false},
		{" png ", FormatPNG, false},
		{"jpg", FormatJPEG, false},
		{".tif", FormatTIFF, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("/photos/IMG_0001.JPG"))
	assert.True(t, IsSupportedFile("scan.tiff"))
	assert.True(t, IsSupportedFile("a.b.webp"))
	assert.False(t, IsSupportedFile("notes.txt"))
	assert.False(t, IsSupportedFile("png"))
	assert.False(t, IsSupportedFile("archive.png.zip"))
}

func TestLossy(t *testing.T) {
	for _, f := range Formats() {
		want := f == FormatJPEG || f == FormatWEBP
		assert.Equal(t, want, f.Lossy(), "format %s", f)
	}
}

func TestFormatsReturnsCopy(t *testing.T) {
	fs := Formats()
	fs[0] = "MUTATED"
	assert.Equal(t, FormatJPEG, Formats()[0])

	exts := FormatJPEG.Extensions()
	exts[0] = "xxx"
	assert.Equal(t, "jpg", FormatJPEG.Canonical())
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{name: "valid", req: Request{Format: FormatPNG, DestDir: "out"}},
		{name: "valid quality", req: Request{Format: FormatJPEG, Quality: 100, DestDir: "out"}},
		{name: "unknown format", req: Request{Format: "GIF", DestDir: "out"}, wantErr: "unsupported target format"},
		{name: "quality too high", req: Request{Format: FormatJPEG, Quality: 101, DestDir: "out"}, wantErr: "out of range"},
		{name: "negative quality", req: Request{Format: FormatJPEG, Quality: -1, DestDir: "out"}, wantErr: "out of range"},
		{name: "missing dest", req: Request{Format: FormatPNG}, wantErr: "destination"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEffectiveQuality(t *testing.T) {
	assert.Equal(t, DefaultQuality, Request{}.EffectiveQuality())
	assert.Equal(t, 1, Request{Quality: 1}.EffectiveQuality())
	assert.Equal(t, 100, Request{Quality: 100}.EffectiveQuality())
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(Outcome{Status: OutcomeSuccess})
	s.Add(Outcome{Status: OutcomeFailure})
	s.Add(Outcome{Status: OutcomeSuccess})

	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3, s.Total())
	assert.True(t, s.HasFailures())
	assert.False(t, Summary{Succeeded: 4}.HasFailures())
}
