// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/fasty/internal/console"
	"github.com/pdiddy/fasty/internal/scan"
	"github.com/pdiddy/fasty/pkg/types"
)

// maxNameWidth bounds file names in the image table.
const maxNameWidth = 30

func (m *Menu) selectSource(s *Session) error {
	m.out.Heading("Select source folder")
	dir, err := m.prompt.Input("New path (Enter to keep)", s.SourceDir, nil)
	if err != nil {
		return err
	}
	abs, err := scan.CheckDir(dir)
	if errors.Is(err, scan.ErrInvalidPath) {
		m.out.Failure("Folder does not exist: %s", dir)
		return nil
	}
	if err != nil {
		return err
	}
	s.SourceDir = abs
	s.Selected = nil
	m.out.Success("Source: %s", abs)
	return nil
}

func (m *Menu) selectDest(s *Session) error {
	m.out.Heading("Select destination folder")
	dir, err := m.prompt.Input("New path (Enter to keep)", s.DestDir, nil)
	if err != nil {
		return err
	}
	abs, err := scan.CheckDir(dir)
	if err == nil {
		s.DestDir = abs
		m.out.Success("Destination: %s", abs)
		return nil
	}
	if !errors.Is(err, scan.ErrInvalidPath) {
		return err
	}

	create, err := m.prompt.Confirm("Folder does not exist. Create it?", true)
	if err != nil {
		return err
	}
	if !create {
		m.out.Warn("Destination unchanged")
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	abs, err = filepath.Abs(dir)
	if err != nil {
		return err
	}
	s.DestDir = abs
	m.out.Success("Created: %s", abs)
	return nil
}

func (m *Menu) viewImages(s *Session) error {
	m.out.Heading("Available images")
	images, err := scan.DetectImages(s.SourceDir)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		m.out.Warn("No images found")
		m.out.Println("Folder:", s.SourceDir)
		m.out.Info("Supported formats:")
		for _, f := range types.Formats() {
			m.out.Printf("  • %s: %s\n", f, strings.Join(f.Extensions(), ", "))
		}
		return nil
	}

	rows := make([][]string, 0, len(images))
	for i, e := range scan.Describe(images) {
		sel := ""
		if s.IsSelected(e.Path) {
			sel = "✓"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), clip(e.Name, maxNameWidth), e.Ext, console.Size(e.Size), sel})
	}
	m.out.Info("Images found (%d)", len(images))
	m.out.Table([]string{"#", "Name", "Ext", "Size", "Sel"}, rows)
	m.out.Println()

	choices := []string{"Select images", "Select all", "Select none", "Back"}
	idx, err := m.prompt.Select("Action", choices, len(choices)-1)
	if err != nil {
		return err
	}
	switch idx {
	case 0:
		names := make([]string, len(images))
		checked := make([]bool, len(images))
		for i, p := range images {
			names[i] = filepath.Base(p)
			checked[i] = s.IsSelected(p)
		}
		state, err := m.prompt.MultiSelect("Select images", names, checked)
		if err != nil {
			return err
		}
		var chosen []string
		for i, on := range state {
			if on && i < len(images) {
				chosen = append(chosen, images[i])
			}
		}
		// An empty answer leaves the previous selection in place.
		if len(chosen) > 0 {
			s.Selected = chosen
		}
	case 1:
		s.Selected = append([]string(nil), images...)
	case 2:
		s.Selected = nil
	}
	m.out.Success("%d selected", len(s.Selected))
	return nil
}

// askRequest collects the conversion parameters, starting from the
// session defaults.
func (m *Menu) askRequest(s *Session) (types.Request, error) {
	formats := types.Formats()
	names := make([]string, len(formats))
	def := 0
	for i, f := range formats {
		names[i] = string(f)
		if strings.EqualFold(string(f), s.Defaults.Format) {
			def = i
		}
	}
	idx, err := m.prompt.Select("Target format", names, def)
	if err != nil {
		return types.Request{}, err
	}
	req := types.Request{Format: formats[idx], DestDir: s.DestDir}

	if req.Format.Lossy() {
		q := s.Defaults.Quality
		if q < 1 || q > 100 {
			q = types.DefaultQuality
		}
		m.out.Info("Quality settings:")
		answer, err := m.prompt.Input("Quality (1-100)", strconv.Itoa(q), ValidateQuality)
		if err != nil {
			return types.Request{}, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return types.Request{}, fmt.Errorf("quality %q: %w", answer, err)
		}
		if err := ValidateQuality(answer); err != nil {
			return types.Request{}, fmt.Errorf("quality %q: %w", answer, err)
		}
		req.Quality = n
	}

	if req.PreserveMetadata, err = m.prompt.Confirm("Preserve metadata?", s.Defaults.PreserveMetadata); err != nil {
		return types.Request{}, err
	}
	if req.Overwrite, err = m.prompt.Confirm("Overwrite existing files?", s.Defaults.Overwrite); err != nil {
		return types.Request{}, err
	}
	return req, nil
}

func (m *Menu) convertImages(s *Session) error {
	if len(s.Selected) == 0 {
		m.out.Warn("No images selected")
		return nil
	}
	m.out.Heading("Convert images")

	req, err := m.askRequest(s)
	if err != nil {
		return err
	}

	m.out.Heading("Summary")
	m.out.Printf("• Images: %d\n", len(s.Selected))
	m.out.Printf("• Format: %s\n", req.Format)
	if req.Format.Lossy() {
		m.out.Printf("• Quality: %d\n", req.EffectiveQuality())
	}
	m.out.Printf("• Preserve metadata: %s\n", yesNo(req.PreserveMetadata))
	m.out.Printf("• Overwrite: %s\n", yesNo(req.Overwrite))
	m.out.Printf("• Destination: %s\n", req.DestDir)

	ok, err := m.prompt.Confirm("Continue?", true)
	if err != nil {
		return err
	}
	if !ok {
		m.out.Warn("Cancelled")
		return nil
	}

	m.out.Println()
	result, err := m.converter.ConvertBatch(s.Selected, req, m.out.Writer())
	if err != nil {
		return err
	}
	s.LastRun = result.Summary
	return nil
}

func (m *Menu) configureDefaults(s *Session) error {
	m.out.Heading("Conversion defaults")
	req, err := m.askRequest(s)
	if err != nil {
		return err
	}
	s.Defaults.Format = string(req.Format)
	if req.Format.Lossy() {
		s.Defaults.Quality = req.Quality
	}
	s.Defaults.PreserveMetadata = req.PreserveMetadata
	s.Defaults.Overwrite = req.Overwrite
	m.out.Success("Defaults updated")
	return nil
}

func (m *Menu) statistics(s *Session) error {
	m.out.Heading("Statistics")
	st, err := scan.FolderStats(s.SourceDir)
	if err != nil {
		return err
	}
	m.out.Table([]string{"Metric", "Value"}, [][]string{
		{"Source", s.SourceDir},
		{"Images", strconv.Itoa(st.Images)},
		{"Total size", console.Size(st.TotalBytes)},
		{"Selected", strconv.Itoa(len(s.Selected))},
		{"Converted", strconv.Itoa(s.LastRun.Succeeded)},
		{"Failed", strconv.Itoa(s.LastRun.Failed)},
	})
	return nil
}

func (m *Menu) help(*Session) error {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  1. Select the source folder\n")
	b.WriteString("  2. Select the destination folder\n")
	b.WriteString("  3. View and select images\n")
	b.WriteString("  4. Convert\n\n")
	b.WriteString("Formats:\n")
	for _, f := range types.Formats() {
		exts := f.Extensions()
		for i := range exts {
			exts[i] = "." + exts[i]
		}
		fmt.Fprintf(&b, "  • %s (%s)\n", f, strings.Join(exts, ", "))
	}
	b.WriteString("\nTIFF files are written with lossless Deflate compression.\n")
	b.WriteString("\nKeys:\n")
	b.WriteString("  • Ctrl-C  cancel / back\n")
	b.WriteString("  • Enter   confirm\n")
	b.WriteString("  • Arrows  navigate")
	m.out.Panel("Help", b.String())
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// clip shortens s to n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
