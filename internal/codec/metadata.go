// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	pngstructure "github.com/dsoprea/go-png-image-structure/v2"
	"github.com/rwcarlsen/goexif/exif"
)

// Metadata is the embedded data carried from a source image into its
// converted output.
type Metadata struct {
	// EXIF is the raw EXIF block starting at the TIFF header ("II*\0" or "MM\0*").
	EXIF []byte

	// ICC is the raw ICC color profile.
	ICC []byte
}

// Empty reports whether m holds nothing to write.
func (m Metadata) Empty() bool {
	return len(m.EXIF) == 0 && len(m.ICC) == 0
}

const (
	jpegSOI  = 0xD8
	jpegAPP1 = 0xE1
	jpegAPP2 = 0xE2

	// maxSegmentPayload is the largest JPEG marker payload (length field
	// counts itself).
	maxSegmentPayload = 0xFFFF - 2
	// maxICCChunk leaves room for the 14-byte ICC_PROFILE chunk header.
	maxICCChunk = maxSegmentPayload - 14
)

var (
	exifHeader = []byte("Exif\x00\x00")
	iccHeader  = []byte("ICC_PROFILE\x00")
	pngMagic   = []byte("\x89PNG\r\n\x1a\n")
)

// ExtractMetadata pulls the EXIF block and ICC profile out of an encoded
// image. format is the decoder name from image.Decode. Unsupported
// containers and malformed blocks yield empty metadata.
func ExtractMetadata(format string, data []byte) Metadata {
	var m Metadata
	switch format {
	case "jpeg":
		m = jpegMetadata(data)
	case "png":
		m = pngMetadata(data)
	case "webp":
		m = webpMetadata(data)
	default:
		return Metadata{}
	}
	if len(m.EXIF) > 0 && !validEXIF(m.EXIF) {
		slog.Debug("dropping unparsable EXIF block", "format", format, "bytes", len(m.EXIF))
		m.EXIF = nil
	}
	return m
}

// validEXIF reports whether raw parses as an EXIF TIFF structure.
func validEXIF(raw []byte) bool {
	_, err := exif.Decode(bytes.NewReader(raw))
	return err == nil || !exif.IsCriticalError(err)
}

func jpegMetadata(data []byte) Metadata {
	sl, err := parseJPEG(data)
	if err != nil {
		slog.Debug("jpeg segments unreadable", "error", err)
		return Metadata{}
	}

	var m Metadata
	iccChunks := map[int][]byte{}
	iccCount := 0
	for _, seg := range sl.Segments() {
		payload := seg.Data
		switch {
		case seg.MarkerId == jpegAPP1 && bytes.HasPrefix(payload, exifHeader) && m.EXIF == nil:
			m.EXIF = append([]byte(nil), payload[len(exifHeader):]...)
		case seg.MarkerId == jpegAPP2 && bytes.HasPrefix(payload, iccHeader) && len(payload) > len(iccHeader)+2:
			seq := int(payload[len(iccHeader)])
			iccCount = int(payload[len(iccHeader)+1])
			iccChunks[seq] = payload[len(iccHeader)+2:]
		}
	}

	if len(iccChunks) > 0 && len(iccChunks) == iccCount {
		seqs := make([]int, 0, len(iccChunks))
		for s := range iccChunks {
			seqs = append(seqs, s)
		}
		sort.Ints(seqs)
		for _, s := range seqs {
			m.ICC = append(m.ICC, iccChunks[s]...)
		}
	}
	return m
}

func parseJPEG(data []byte) (*jpegstructure.SegmentList, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != jpegSOI {
		return nil, errors.New("not a JPEG stream")
	}
	mc, err := jpegstructure.NewJpegMediaParser().ParseBytes(data)
	if err != nil {
		return nil, err
	}
	sl, ok := mc.(*jpegstructure.SegmentList)
	if !ok || len(sl.Segments()) == 0 {
		return nil, errors.New("no JPEG segments")
	}
	return sl, nil
}

func pngMetadata(data []byte) Metadata {
	cs, err := parsePNG(data)
	if err != nil {
		slog.Debug("png chunks unreadable", "error", err)
		return Metadata{}
	}

	var m Metadata
	for _, c := range cs.Chunks() {
		switch c.Type {
		case "eXIf":
			m.EXIF = append([]byte(nil), c.Data...)
		case "iCCP":
			if icc, err := inflateICCP(c.Data); err == nil {
				m.ICC = icc
			}
		case "IDAT":
			return m
		}
	}
	return m
}

func parsePNG(data []byte) (*pngstructure.ChunkSlice, error) {
	if !bytes.HasPrefix(data, pngMagic) {
		return nil, errors.New("not a PNG stream")
	}
	mc, err := pngstructure.NewPngMediaParser().ParseBytes(data)
	if err != nil {
		return nil, err
	}
	cs, ok := mc.(*pngstructure.ChunkSlice)
	if !ok || len(cs.Chunks()) == 0 || cs.Chunks()[0].Type != "IHDR" {
		return nil, errors.New("PNG stream does not start with IHDR")
	}
	return cs, nil
}

func inflateICCP(body []byte) ([]byte, error) {
	nul := bytes.IndexByte(body, 0)
	if nul < 0 || nul+2 > len(body) {
		return nil, errors.New("malformed iCCP chunk")
	}
	if body[nul+1] != 0 {
		return nil, fmt.Errorf("unknown iCCP compression method %d", body[nul+1])
	}
	zr, err := zlib.NewReader(bytes.NewReader(body[nul+2:]))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func webpMetadata(data []byte) Metadata {
	var m Metadata
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return m
	}
	i := 12
	for i+8 <= len(data) {
		typ := string(data[i : i+4])
		n := int(binary.LittleEndian.Uint32(data[i+4 : i+8]))
		if n < 0 || i+8+n > len(data) {
			break
		}
		body := data[i+8 : i+8+n]
		switch typ {
		case "EXIF":
			m.EXIF = append([]byte(nil), bytes.TrimPrefix(body, exifHeader)...)
		case "ICCP":
			m.ICC = append([]byte(nil), body...)
		}
		i += 8 + n + n%2
	}
	return m
}

// InjectJPEG inserts APP1 (EXIF) and APP2 (ICC) segments directly after
// the SOI marker of an encoded JPEG. An EXIF block too large for a single
// segment is skipped.
func InjectJPEG(data []byte, m Metadata) ([]byte, error) {
	if m.Empty() {
		return data, nil
	}
	sl, err := parseJPEG(data)
	if err != nil {
		return nil, fmt.Errorf("injecting metadata: %w", err)
	}
	segs := sl.Segments()
	if segs[0].MarkerId != jpegSOI {
		return nil, errors.New("injecting metadata: JPEG stream does not start with SOI")
	}

	var added []*jpegstructure.Segment
	if n := len(exifHeader) + len(m.EXIF); len(m.EXIF) > 0 && n <= maxSegmentPayload {
		added = append(added, &jpegstructure.Segment{
			MarkerId:   jpegAPP1,
			MarkerName: "APP1",
			Data:       concat(exifHeader, m.EXIF),
		})
	} else if len(m.EXIF) > 0 {
		slog.Debug("EXIF block exceeds one JPEG segment, not written", "bytes", len(m.EXIF))
	}

	if len(m.ICC) > 0 {
		chunks := (len(m.ICC) + maxICCChunk - 1) / maxICCChunk
		if chunks > 255 {
			return nil, fmt.Errorf("ICC profile too large (%d bytes)", len(m.ICC))
		}
		for c := 0; c < chunks; c++ {
			start := c * maxICCChunk
			end := min(start+maxICCChunk, len(m.ICC))
			added = append(added, &jpegstructure.Segment{
				MarkerId:   jpegAPP2,
				MarkerName: "APP2",
				Data:       concat(iccHeader, []byte{byte(c + 1), byte(chunks)}, m.ICC[start:end]),
			})
		}
	}

	out := make([]*jpegstructure.Segment, 0, len(segs)+len(added))
	out = append(out, segs[0])
	out = append(out, added...)
	out = append(out, segs[1:]...)

	var buf bytes.Buffer
	buf.Grow(len(data) + len(m.EXIF) + len(m.ICC) + 64)
	if err := jpegstructure.NewSegmentList(out).Write(&buf); err != nil {
		return nil, fmt.Errorf("writing jpeg segments: %w", err)
	}
	return buf.Bytes(), nil
}

// InjectPNG inserts iCCP and eXIf chunks after the IHDR chunk of an
// encoded PNG.
func InjectPNG(data []byte, m Metadata) ([]byte, error) {
	if m.Empty() {
		return data, nil
	}
	cs, err := parsePNG(data)
	if err != nil {
		return nil, fmt.Errorf("injecting metadata: %w", err)
	}
	chunks := cs.Chunks()

	var added []*pngstructure.Chunk
	if len(m.ICC) > 0 {
		var z bytes.Buffer
		z.WriteString("icc\x00\x00")
		zw := zlib.NewWriter(&z)
		if _, err := zw.Write(m.ICC); err != nil {
			return nil, fmt.Errorf("compressing ICC profile: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compressing ICC profile: %w", err)
		}
		added = append(added, newChunk("iCCP", z.Bytes()))
	}
	if len(m.EXIF) > 0 {
		added = append(added, newChunk("eXIf", m.EXIF))
	}

	out := make([]*pngstructure.Chunk, 0, len(chunks)+len(added))
	out = append(out, chunks[0])
	out = append(out, added...)
	out = append(out, chunks[1:]...)

	var buf bytes.Buffer
	buf.Grow(len(data) + len(m.EXIF) + len(m.ICC) + 64)
	if err := pngstructure.NewChunkSlice(out).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing png chunks: %w", err)
	}
	return buf.Bytes(), nil
}

func newChunk(typ string, body []byte) *pngstructure.Chunk {
	c := &pngstructure.Chunk{
		Type:   typ,
		Length: uint32(len(body)),
		Data:   body,
	}
	c.UpdateCrc()
	return c
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
