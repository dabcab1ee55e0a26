package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert converts every image in samples/ to the given format (e.g. webp)
// into converted/, using the freshly built binary.
func Convert(format string) error {
	mg.Deps(Build, Samples)
	fmt.Printf("[convert] %s -> converted (%s)\n", samplesDir, format)
	bin := "." + string(filepath.Separator) + filepath.Join(binDir, binName)
	return sh.RunV(bin, "convert", "--source", samplesDir, "--all", "--to", format, "--dest", "converted", "--no-color")
}
