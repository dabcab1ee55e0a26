// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fasty/internal/console"
	"github.com/pdiddy/fasty/pkg/types"
)

// scriptedPrompter answers prompts from a fixed queue. When the queue is
// empty every prompt reports ErrUserCancelled, which ends a Run.
type scriptedPrompter struct {
	t       *testing.T
	answers []any
	labels  []string

	// ignoreValidate returns Input answers without running validate.
	ignoreValidate bool
}

func script(t *testing.T, answers ...any) *scriptedPrompter {
	return &scriptedPrompter{t: t, answers: answers}
}

func (p *scriptedPrompter) next(label string) (any, bool) {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return nil, false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, true
}

func (p *scriptedPrompter) Select(label string, items []string, def int) (int, error) {
	a, ok := p.next(label)
	if !ok {
		return 0, ErrUserCancelled
	}
	v, isInt := a.(int)
	require.True(p.t, isInt, "prompt %q wants int, script has %#v", label, a)
	require.Less(p.t, v, len(items))
	return v, nil
}

func (p *scriptedPrompter) Input(label, def string, validate func(string) error) (string, error) {
	a, ok := p.next(label)
	if !ok {
		return "", ErrUserCancelled
	}
	v, isStr := a.(string)
	require.True(p.t, isStr, "prompt %q wants string, script has %#v", label, a)
	if v == "" {
		v = def
	}
	if validate != nil && !p.ignoreValidate {
		require.NoError(p.t, validate(v))
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(label string, def bool) (bool, error) {
	a, ok := p.next(label)
	if !ok {
		return false, ErrUserCancelled
	}
	v, isBool := a.(bool)
	require.True(p.t, isBool, "prompt %q wants bool, script has %#v", label, a)
	return v, nil
}

func (p *scriptedPrompter) MultiSelect(label string, items []string, checked []bool) ([]bool, error) {
	a, ok := p.next(label)
	if !ok {
		return nil, ErrUserCancelled
	}
	v, isSlice := a.([]bool)
	require.True(p.t, isSlice, "prompt %q wants []bool, script has %#v", label, a)
	return v, nil
}

func (p *scriptedPrompter) Pause() error { return nil }

func (p *scriptedPrompter) done() {
	assert.Empty(p.t, p.answers, "unused script answers")
}

// main menu indexes
const (
	optSource = iota
	optDest
	optView
	optConvert
	optDefaults
	optStats
	optHelp
	optExit
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 0})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

type fixture struct {
	src, dest string
	out       *bytes.Buffer
	session   *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := t.TempDir()
	dest := t.TempDir()
	return &fixture{
		src:     src,
		dest:    dest,
		out:     &bytes.Buffer{},
		session: NewSession(src, dest, types.DefaultConfig().Conversion),
	}
}

func (f *fixture) run(t *testing.T, p *scriptedPrompter) {
	t.Helper()
	m := New(p, console.New(f.out, false))
	require.NoError(t, m.Run(f.session))
	p.done()
}

func TestRun_Exit(t *testing.T) {
	f := newFixture(t)
	f.run(t, script(t, optExit, true))
	assert.Contains(t, f.out.String(), "Goodbye!")
	assert.Contains(t, f.out.String(), "FASTY CONVERTER")
}

func TestRun_ExitDeclinedShowsMenuAgain(t *testing.T) {
	f := newFixture(t)
	p := script(t, optExit, false, optExit, true)
	f.run(t, p)
	assert.Equal(t, []string{"Option", "Exit?", "Option", "Exit?"}, p.labels)
}

func TestSelectSource(t *testing.T) {
	f := newFixture(t)
	other := t.TempDir()
	f.session.Selected = []string{"stale.png"}

	f.run(t, script(t, optSource, other))

	assert.Equal(t, other, f.session.SourceDir)
	assert.Empty(t, f.session.Selected)
	assert.Contains(t, f.out.String(), "✓ Source: "+other)
}

func TestSelectSource_InvalidPath(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.src, "missing")

	f.run(t, script(t, optSource, missing))

	assert.Equal(t, f.src, f.session.SourceDir)
	assert.Contains(t, f.out.String(), "✗ Folder does not exist")
}

func TestSelectDest_CreatesMissingFolder(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(t.TempDir(), "converted")

	f.run(t, script(t, optDest, target, true))

	assert.Equal(t, target, f.session.DestDir)
	assert.DirExists(t, target)
}

func TestSelectDest_DeclineCreate(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(t.TempDir(), "converted")

	f.run(t, script(t, optDest, target, false))

	assert.Equal(t, f.dest, f.session.DestDir)
	assert.NoDirExists(t, target)
	assert.Contains(t, f.out.String(), "Destination unchanged")
}

func TestViewImages_SelectAll(t *testing.T) {
	f := newFixture(t)
	writePNG(t, filepath.Join(f.src, "b.png"))
	writePNG(t, filepath.Join(f.src, "a.png"))
	require.NoError(t, os.WriteFile(filepath.Join(f.src, "notes.txt"), []byte("x"), 0o644))

	f.run(t, script(t, optView, 1))

	assert.Equal(t, []string{filepath.Join(f.src, "a.png"), filepath.Join(f.src, "b.png")}, f.session.Selected)
	out := f.out.String()
	assert.Contains(t, out, "Images found (2)")
	assert.NotContains(t, out, "notes")
	assert.Contains(t, out, "2 selected")
}

func TestViewImages_PickSubset(t *testing.T) {
	f := newFixture(t)
	writePNG(t, filepath.Join(f.src, "a.png"))
	writePNG(t, filepath.Join(f.src, "b.png"))

	f.run(t, script(t, optView, 0, []bool{false, true}))

	assert.Equal(t, []string{filepath.Join(f.src, "b.png")}, f.session.Selected)
}

func TestViewImages_EmptyPickKeepsSelection(t *testing.T) {
	f := newFixture(t)
	writePNG(t, filepath.Join(f.src, "a.png"))
	prev := []string{filepath.Join(f.src, "a.png")}
	f.session.Selected = prev

	f.run(t, script(t, optView, 0, []bool{false}))

	assert.Equal(t, prev, f.session.Selected)
}

func TestViewImages_SelectNone(t *testing.T) {
	f := newFixture(t)
	writePNG(t, filepath.Join(f.src, "a.png"))
	f.session.Selected = []string{filepath.Join(f.src, "a.png")}

	f.run(t, script(t, optView, 2))

	assert.Empty(t, f.session.Selected)
}

func TestViewImages_NoImagesListsFormats(t *testing.T) {
	f := newFixture(t)

	f.run(t, script(t, optView))

	out := f.out.String()
	assert.Contains(t, out, "No images found")
	assert.Contains(t, out, "RAW: raw, arw, cr2, nef, dng")
}

func TestConvert_NoSelection(t *testing.T) {
	f := newFixture(t)

	f.run(t, script(t, optConvert))

	assert.Contains(t, f.out.String(), "No images selected")
}

func TestConvert_ToPNG(t *testing.T) {
	f := newFixture(t)
	good := filepath.Join(f.src, "good.png")
	bad := filepath.Join(f.src, "bad.png")
	writePNG(t, good)
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	f.session.Selected = []string{good, bad}

	// format PNG, preserve metadata, no overwrite, continue
	f.run(t, script(t, optConvert, 1, true, false, true))

	assert.Equal(t, types.Summary{Succeeded: 1, Failed: 1}, f.session.LastRun)
	assert.FileExists(t, filepath.Join(f.dest, "good.png"))
	out := f.out.String()
	assert.Contains(t, out, "✓ good.png")
	assert.Contains(t, out, "✗ Error: bad.png")
	assert.Contains(t, out, "✓ Converted: 1")
	assert.Contains(t, out, "✗ Failed: 1")
}

func TestConvert_JPEGAsksForQuality(t *testing.T) {
	f := newFixture(t)
	in := filepath.Join(f.src, "logo.png")
	writePNG(t, in)
	f.session.Selected = []string{in}

	p := script(t, optConvert, 0, "70", false, false, true)
	f.run(t, p)

	assert.Contains(t, p.labels, "Quality (1-100)")
	assert.Contains(t, f.out.String(), "• Quality: 70")
	assert.FileExists(t, filepath.Join(f.dest, "logo.jpg"))
}

func TestConvert_InvalidQualityIsRejected(t *testing.T) {
	for _, answer := range []string{"high", "0", "250"} {
		t.Run(answer, func(t *testing.T) {
			f := newFixture(t)
			in := filepath.Join(f.src, "logo.png")
			writePNG(t, in)
			f.session.Selected = []string{in}

			p := script(t, optConvert, 0, answer)
			p.ignoreValidate = true
			f.run(t, p)

			assert.Contains(t, f.out.String(), "✗ Error: quality")
			assert.NotContains(t, p.labels, "Continue?")
			entries, err := os.ReadDir(f.dest)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestHelp_MentionsTIFFCompression(t *testing.T) {
	f := newFixture(t)
	f.run(t, script(t, optHelp))
	assert.Contains(t, f.out.String(), "Deflate")
}

func TestConvert_LosslessSkipsQuality(t *testing.T) {
	f := newFixture(t)
	in := filepath.Join(f.src, "logo.png")
	writePNG(t, in)
	f.session.Selected = []string{in}

	p := script(t, optConvert, 4, false, false, true)
	f.run(t, p)

	assert.NotContains(t, p.labels, "Quality (1-100)")
	assert.FileExists(t, filepath.Join(f.dest, "logo.tiff"))
}

func TestConvert_Cancelled(t *testing.T) {
	f := newFixture(t)
	in := filepath.Join(f.src, "logo.png")
	writePNG(t, in)
	f.session.Selected = []string{in}

	f.run(t, script(t, optConvert, 1, true, false, false))

	assert.Contains(t, f.out.String(), "Cancelled")
	entries, err := os.ReadDir(f.dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, types.Summary{}, f.session.LastRun)
}

func TestConfigureDefaults(t *testing.T) {
	f := newFixture(t)

	f.run(t, script(t, optDefaults, 3, "60", false, true))

	assert.Equal(t, types.ConversionConfig{Format: "WEBP", Quality: 60, PreserveMetadata: false, Overwrite: true}, f.session.Defaults)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	writePNG(t, filepath.Join(f.src, "a.png"))
	f.session.LastRun = types.Summary{Succeeded: 3, Failed: 1}

	f.run(t, script(t, optStats))

	out := f.out.String()
	assert.Contains(t, out, "Images")
	assert.Regexp(t, `Converted\s+3`, out)
	assert.Regexp(t, `Failed\s+1`, out)
}

func TestRun_ActionErrorReturnsToMenu(t *testing.T) {
	f := newFixture(t)
	f.session.SourceDir = filepath.Join(f.src, "removed")

	p := script(t, optStats, optHelp, optExit, true)
	f.run(t, p)

	out := f.out.String()
	assert.Contains(t, out, "✗ Error:")
	assert.Contains(t, out, "HEIF (.heif, .heic)")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_CancelAtMenuAsksToExit(t *testing.T) {
	f := newFixture(t)
	p := script(t)
	f.run(t, p)
	assert.Equal(t, []string{"Option", "Operation cancelled. Exit?"}, p.labels)
}
