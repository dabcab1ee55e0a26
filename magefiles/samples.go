package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const samplesDir = "samples"

// Samples writes a set of test images into samples/: an alpha PNG, a JPEG,
// a BMP, a TIFF, a corrupt PNG and a non-image file, for trying the
// converter by hand.
func Samples() error {
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", samplesDir, err)
	}

	opaque := gradient(320, 200, 255)
	translucent := gradient(320, 200, 128)

	files := []struct {
		name string
		img  image.Image
	}{
		{"gradient_alpha.png", translucent},
		{"photo.jpg", opaque},
		{"chart.bmp", opaque},
		{"scan.tiff", opaque},
	}
	for _, f := range files {
		path := filepath.Join(samplesDir, f.name)
		if err := imaging.Save(f.img, path, imaging.JPEGQuality(90)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}

	raw := map[string]string{
		"corrupt.png": "this is not a png",
		"notes.txt":   "not an image",
	}
	for name, body := range raw {
		path := filepath.Join(samplesDir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Samples written.")
	return nil
}

// gradient returns a w x h image fading from red to blue with the given
// alpha.
func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{A: alpha})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / w),
				G: uint8(255 * y / h),
				B: uint8(255 - 255*x/w),
				A: alpha,
			})
		}
	}
	return img
}
