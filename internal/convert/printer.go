// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/fasty/pkg/types"
)

// Printer renders the batch transcript.
type Printer interface {
	// Outcome prints the line for one converted or failed item.
	Outcome(w io.Writer, o types.Outcome)

	// Summary prints the closing counts of a batch.
	Summary(w io.Writer, s types.Summary)
}

// PlainPrinter writes an uncolored transcript.
type PlainPrinter struct{}

// Outcome implements Printer.
func (PlainPrinter) Outcome(w io.Writer, o types.Outcome) {
	fmt.Fprintln(w, OutcomeLine(o))
}

// Summary implements Printer.
func (PlainPrinter) Summary(w io.Writer, s types.Summary) {
	fmt.Fprintf(w, "\n%s\n", SummaryLine(s))
}

// OutcomeLine formats o as a single transcript line.
func OutcomeLine(o types.Outcome) string {
	if o.OK() {
		return "✓ " + filepath.Base(o.Output)
	}
	return fmt.Sprintf("✗ %s - %s", filepath.Base(o.Source), o.Reason)
}

// SummaryLine formats the batch counts.
func SummaryLine(s types.Summary) string {
	return fmt.Sprintf("Batch summary: %d converted, %d failed (total: %d)", s.Succeeded, s.Failed, s.Total())
}
