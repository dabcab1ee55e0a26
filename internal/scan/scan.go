// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan finds convertible images in a folder. Selection is by
// filename suffix only; file contents are not inspected until decode.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/fasty/pkg/types"
)

// ErrInvalidPath indicates the supplied directory does not exist or is not
// a directory.
var ErrInvalidPath = errors.New("folder does not exist")

// Entry describes one detected image file.
type Entry struct {
	Path string
	Name string // base name without extension
	Ext  string // lower-case extension without dot
	Size int64
}

// Stats summarizes the images of a folder.
type Stats struct {
	Dir        string
	Images     int
	TotalBytes int64
}

// CheckDir returns the absolute form of dir, or ErrInvalidPath when dir is
// missing or not a directory.
func CheckDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
		}
		return "", fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// DetectImages returns the supported image files directly inside dir,
// sorted by path. Subdirectories are not descended.
func DetectImages(dir string) ([]string, error) {
	if _, err := CheckDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !types.IsSupportedFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Describe stats each path. Files that vanished since detection are
// reported with size zero.
func Describe(paths []string) []Entry {
	out := make([]Entry, 0, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		ext := filepath.Ext(base)
		e := Entry{
			Path: p,
			Name: strings.TrimSuffix(base, ext),
			Ext:  strings.ToLower(strings.TrimPrefix(ext, ".")),
		}
		if info, err := os.Stat(p); err == nil {
			e.Size = info.Size()
		}
		out = append(out, e)
	}
	return out
}

// FolderStats counts the detected images in dir and their total size.
func FolderStats(dir string) (Stats, error) {
	paths, err := DetectImages(dir)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Dir: dir, Images: len(paths)}
	for _, e := range Describe(paths) {
		s.TotalBytes += e.Size
	}
	return s, nil
}
