// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console renders fasty's terminal output: colored status lines,
// bordered panels, aligned tables and the batch transcript.
package console

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/pdiddy/fasty/pkg/types"
)

// Console writes styled output to a single writer.
type Console struct {
	w     io.Writer
	color bool

	success *color.Color
	failure *color.Color
	warn    *color.Color
	info    *color.Color
	accent  *color.Color
	dim     *color.Color
}

// New returns a Console writing to w. With enableColor false every style
// renders as plain text.
func New(w io.Writer, enableColor bool) *Console {
	c := &Console{
		w:       w,
		color:   enableColor,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		accent:  color.New(color.FgCyan, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}
	for _, s := range []*color.Color{c.success, c.failure, c.warn, c.info, c.accent, c.dim} {
		if enableColor {
			s.EnableColor()
		} else {
			s.DisableColor()
		}
	}
	return c
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.w
}

// Println writes an unstyled line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.w, a...)
}

// Printf writes unstyled formatted text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.w, format, a...)
}

// Success writes a green line prefixed with a check mark.
func (c *Console) Success(format string, a ...any) {
	c.success.Fprintln(c.w, "✓ "+fmt.Sprintf(format, a...))
}

// Failure writes a red line prefixed with a cross.
func (c *Console) Failure(format string, a ...any) {
	c.failure.Fprintln(c.w, "✗ "+fmt.Sprintf(format, a...))
}

// Warn writes a yellow line.
func (c *Console) Warn(format string, a ...any) {
	c.warn.Fprintln(c.w, fmt.Sprintf(format, a...))
}

// Info writes a cyan line.
func (c *Console) Info(format string, a ...any) {
	c.info.Fprintln(c.w, fmt.Sprintf(format, a...))
}

// Heading writes a bold cyan line preceded by a blank line.
func (c *Console) Heading(format string, a ...any) {
	fmt.Fprintln(c.w)
	c.accent.Fprintln(c.w, fmt.Sprintf(format, a...))
}

// Panel writes body inside a rounded border with an optional title line.
func (c *Console) Panel(title, body string) {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if c.color {
		style = style.BorderForeground(lipgloss.Color("14"))
	}
	content := body
	if title != "" {
		content = c.accent.Sprint(title) + "\n" + body
	}
	fmt.Fprintln(c.w, style.Render(content))
}

// Banner writes the application header.
func (c *Console) Banner() {
	c.Panel("", c.accent.Sprint("FASTY CONVERTER")+"\n"+"Fast batch image conversion")
	fmt.Fprintln(c.w)
}

// Table writes rows aligned under headers. Cells are padded before
// styling so colors do not disturb alignment.
func (c *Console) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(r[i]))
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	head := make([]string, len(headers))
	for i, h := range headers {
		head[i] = c.accent.Sprint(pad(h, widths[i]))
	}
	fmt.Fprintln(c.w, strings.TrimRight(strings.Join(head, "  "), " "))

	rule := 0
	for _, w := range widths {
		rule += w + 2
	}
	fmt.Fprintln(c.w, c.dim.Sprint(strings.Repeat("─", max(rule-2, 0))))

	for _, r := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(c.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// Outcome prints one transcript line. It implements convert.Printer.
func (c *Console) Outcome(w io.Writer, o types.Outcome) {
	if o.OK() {
		c.success.Fprintln(w, "✓ "+filepath.Base(o.Output))
		return
	}
	c.failure.Fprintln(w, fmt.Sprintf("✗ Error: %s - %s", filepath.Base(o.Source), o.Reason))
}

// Summary prints the batch counts. It implements convert.Printer.
func (c *Console) Summary(w io.Writer, s types.Summary) {
	fmt.Fprintln(w)
	c.success.Fprintln(w, fmt.Sprintf("✓ Converted: %d", s.Succeeded))
	c.failure.Fprintln(w, fmt.Sprintf("✗ Failed: %d", s.Failed))
}

// Progress prints a one-line progress bar for done of total items.
func (c *Console) Progress(done, total int) {
	if total <= 0 {
		return
	}
	const width = 24
	filled := done * width / total
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	c.dim.Fprintln(c.w, fmt.Sprintf("  %s %d/%d", bar, done, total))
}

// Size formats a byte count for display.
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
