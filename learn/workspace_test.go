package learn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abhyaasi/models"
)

func TestMaterializeAndCollectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	task := models.CodingTask{
		StarterFiles: map[string]string{
			"main.go":         "package main\n",
			"internal/lib.go": "package internal\n",
		},
	}

	root, err := Materialize(dir, "m1", task)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "m1"), root)

	files, err := Collect(dir, "m1")
	require.NoError(t, err)
	assert.Equal(t, task.StarterFiles, files)
}

func TestMaterializeKeepsUserEdits(t *testing.T) {
	dir := t.TempDir()
	task := models.CodingTask{
		StarterFiles: map[string]string{"main.go": "package main\n"},
	}

	_, err := Materialize(dir, "m1", task)
	require.NoError(t, err)

	edited := "package main\n\nfunc main() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m1", "main.go"), []byte(edited), 0o644))

	_, err = Materialize(dir, "m1", task)
	require.NoError(t, err)

	files, err := Collect(dir, "m1")
	require.NoError(t, err)
	assert.Equal(t, edited, files["main.go"], "starter files must not clobber edits")
}
