package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkProject_SkipsGeneratedDirs(t *testing.T) {
	root := t.TempDir()
	files := []string{
		"main.go",
		"internal/pkg/pkg_test.go",
		"converted/photo.jpg",
		"samples/photo.png",
		"bin/fasty",
	}
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x\n"), 0o644))
	}

	var seen []string
	require.NoError(t, walkProject(root, func(path string, _ []byte) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		seen = append(seen, filepath.ToSlash(rel))
	}))
	assert.ElementsMatch(t, []string{"main.go", "internal/pkg/pkg_test.go"}, seen)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 2, countLines([]byte("package main\n\n  \t\nfunc main() {}")))
	assert.Equal(t, 0, countLines(nil))
}
