package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Open(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "places.csv")
	require.NoError(t, os.WriteFile(path, []byte("city,county,country\n"), 0o644))

	rc, err := NewOSFileSystem().Open(path)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "city,county,country\n", string(content))
}

func TestOSFileSystem_OpenMissing(t *testing.T) {
	_, err := NewOSFileSystem().Open(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestOSFileSystem_OpenDirectory(t *testing.T) {
	_, err := NewOSFileSystem().Open(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestOSFileSystem_WriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output", "nested", "summary_output.json")

	require.NoError(t, NewOSFileSystem().WriteFile(path, []byte("[]\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(OutputFileMode), info.Mode().Perm())
}

func TestOSFileSystem_WriteFileOverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous report body"), 0o644))

	fsys := NewOSFileSystem()
	require.NoError(t, fsys.WriteFile(path, []byte("[]\n")))

	content, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be renamed away")
	assert.Equal(t, "summary.json", entries[0].Name())
}

func TestOSFileSystem_WriteFileIntoDirectoryPathFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	err := NewOSFileSystem().WriteFile(target, []byte("[]"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed write must clean up its temporary file")
}
