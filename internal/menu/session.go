// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"github.com/pdiddy/fasty/pkg/types"
)

// Session is the mutable state of one interactive run. Every menu action
// receives it explicitly.
type Session struct {
	// SourceDir is the absolute folder images are listed from.
	SourceDir string

	// DestDir is the absolute folder converted files are written to.
	DestDir string

	// Selected holds the chosen source paths in selection order.
	Selected []string

	// Defaults pre-fill the conversion prompts.
	Defaults types.ConversionConfig

	// LastRun holds the counts of the most recent batch.
	LastRun types.Summary
}

// NewSession returns a session rooted at the given folders.
func NewSession(sourceDir, destDir string, defaults types.ConversionConfig) *Session {
	return &Session{
		SourceDir: sourceDir,
		DestDir:   destDir,
		Defaults:  defaults,
	}
}

// IsSelected reports whether path is in the selection.
func (s *Session) IsSelected(path string) bool {
	for _, p := range s.Selected {
		if p == path {
			return true
		}
	}
	return false
}
