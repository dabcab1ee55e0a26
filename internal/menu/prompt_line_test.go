// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linePrompter(input string) (*LinePrompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewLinePrompter(strings.NewReader(input), &out), &out
}

func TestLinePrompter_Select(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"number", "2\n", 1},
		{"default on empty", "\n", 2},
		{"retry after invalid", "9\nx\n1\n", 0},
		{"last line without newline", "3", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := linePrompter(tt.input)
			got, err := p.Select("Pick", []string{"a", "b", "c"}, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinePrompter_SelectListsItems(t *testing.T) {
	p, out := linePrompter("1\n")
	_, err := p.Select("Pick", []string{"JPEG", "PNG"}, 0)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "  1) JPEG\n  2) PNG\n")
	assert.Contains(t, out.String(), "Pick [1]: ")
}

func TestLinePrompter_EOFCancels(t *testing.T) {
	p, _ := linePrompter("")
	_, err := p.Select("Pick", []string{"a"}, 0)
	assert.ErrorIs(t, err, ErrUserCancelled)

	_, err = p.Input("Path", "", nil)
	assert.ErrorIs(t, err, ErrUserCancelled)

	_, err = p.Confirm("Sure?", true)
	assert.ErrorIs(t, err, ErrUserCancelled)

	assert.ErrorIs(t, p.Pause(), ErrUserCancelled)
}

func TestLinePrompter_InputValidates(t *testing.T) {
	p, out := linePrompter("0\nabc\n70\n")
	got, err := p.Input("Quality (1-100)", "85", ValidateQuality)
	require.NoError(t, err)
	assert.Equal(t, "70", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Error:"))
}

func TestLinePrompter_InputDefault(t *testing.T) {
	p, _ := linePrompter("\n")
	got, err := p.Input("Quality (1-100)", "85", ValidateQuality)
	require.NoError(t, err)
	assert.Equal(t, "85", got)
}

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"S\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nno\n", true, false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, _ := linePrompter(tt.input)
			got, err := p.Confirm("Sure?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinePrompter_MultiSelect(t *testing.T) {
	items := []string{"a.png", "b.png", "c.png", "d.png"}

	p, _ := linePrompter("1,3-4\n")
	got, err := p.MultiSelect("Select", items, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, true}, got)

	p, _ = linePrompter("\n")
	got, err = p.MultiSelect("Select", items, []bool{false, true, false, false})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, false}, got)

	p, out := linePrompter("7\na\n")
	got, err = p.MultiSelect("Select", items, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, got)
	assert.Contains(t, out.String(), `invalid selection "7"`)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      string
		want    []bool
		wantErr bool
	}{
		{in: "all", want: []bool{true, true, true}},
		{in: "N", want: []bool{false, false, false}},
		{in: "2", want: []bool{false, true, false}},
		{in: " 1 , 3 ", want: []bool{true, false, true}},
		{in: "1-3", want: []bool{true, true, true}},
		{in: "1,,2", want: []bool{true, true, false}},
		{in: "0", wantErr: true},
		{in: "4", wantErr: true},
		{in: "3-1", wantErr: true},
		{in: "x", wantErr: true},
		{in: "-2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSelection(tt.in, 3)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateQuality(t *testing.T) {
	for _, ok := range []string{"1", "85", "100", " 50 "} {
		assert.NoError(t, ValidateQuality(ok), ok)
	}
	for _, bad := range []string{"", "0", "101", "high", "8.5"} {
		assert.Error(t, ValidateQuality(bad), bad)
	}
}
