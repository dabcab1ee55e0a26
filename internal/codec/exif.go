// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"image"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime returns the EXIF capture time of the image at path. The
// second result is false when the file has no readable EXIF date.
func CaptureTime(path string) (time.Time, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}
	m := ExtractMetadata(name, data)
	if len(m.EXIF) == 0 {
		return time.Time{}, false
	}
	x, err := exif.Decode(bytes.NewReader(m.EXIF))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return time.Time{}, false
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
