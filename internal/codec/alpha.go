// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"image"

	"github.com/disintegration/imaging"
)

// NeedsFlatten reports whether img carries an alpha channel or a palette
// and must be reduced to plain RGB before a JPEG encode.
func NeedsFlatten(img image.Image) bool {
	switch img.(type) {
	case *image.Paletted:
		return true
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	}
	return true
}

// FlattenAlpha returns an opaque copy of img. Color values are kept and
// the alpha channel is dropped; transparent pixels are not composited.
func FlattenAlpha(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
