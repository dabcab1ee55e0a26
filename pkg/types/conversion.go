// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Request describes one batch conversion. It is built once from the user's
// choices and is not modified while the batch runs.
type Request struct {
	// Format is the target format.
	Format Format `json:"format" yaml:"format"`

	// Quality is the encoder quality in [1,100] for lossy formats.
	// Zero selects DefaultQuality. Ignored for lossless formats.
	Quality int `json:"quality" yaml:"quality"`

	// PreserveMetadata carries the source EXIF block and ICC profile into
	// the output when the target container can hold them.
	PreserveMetadata bool `json:"preserve_metadata" yaml:"preserve_metadata"`

	// Overwrite replaces an existing output file instead of picking a
	// suffixed name.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// DestDir is the directory converted files are written to. It is
	// created if missing.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`
}

// Validate checks that the request can drive a batch.
func (r Request) Validate() error {
	if !r.Format.Valid() {
		return fmt.Errorf("unsupported target format %q", r.Format)
	}
	if r.Quality < 0 || r.Quality > 100 {
		return fmt.Errorf("quality %d out of range 1-100", r.Quality)
	}
	if r.DestDir == "" {
		return errors.New("destination directory is required")
	}
	return nil
}

// EffectiveQuality returns the quality passed to lossy encoders.
func (r Request) EffectiveQuality() int {
	if r.Quality == 0 {
		return DefaultQuality
	}
	return r.Quality
}

// OutcomeStatus tags a per-item result.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// Outcome is the result of converting one source file.
type Outcome struct {
	Status OutcomeStatus `json:"status" yaml:"status"`

	// Source is the input path as given.
	Source string `json:"source" yaml:"source"`

	// Output is the written file; empty on failure.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Reason is a short human-readable failure description.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Err is the full failure cause.
	Err error `json:"-" yaml:"-"`
}

// OK reports whether the item converted.
func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess
}

// Summary holds the aggregate counts of a batch run.
type Summary struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Total returns the number of items processed.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// HasFailures reports whether any item failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	if o.OK() {
		s.Succeeded++
		return
	}
	s.Failed++
}
