package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_OpenAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/places.csv", "city,county,country\n")

	rc, err := mfs.Open("data/places.csv")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "city,county,country\n", string(content))
}

func TestMemoryFileSystem_PathsAreNormalized(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("./data//people.csv", "x")

	content, err := mfs.ReadFile("data/people.csv")
	require.NoError(t, err)
	assert.Equal(t, "x", string(content))

	content, err = mfs.ReadFile(`data\people.csv`)
	require.NoError(t, err)
	assert.Equal(t, "x", string(content))
}

func TestMemoryFileSystem_MissingFile(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("nope.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.Stat("nope.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_WriteFileReplaces(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("out/summary.json", "old content that is longer")

	require.NoError(t, mfs.WriteFile("out/summary.json", []byte("[]\n")))

	content, err := mfs.ReadFile("out/summary.json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
	assert.Equal(t, 1, mfs.Writes())

	info, err := mfs.Stat("out/summary.json")
	require.NoError(t, err)
	assert.Equal(t, "summary.json", info.Name())
	assert.Equal(t, int64(3), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystem_WriteFileCopiesInput(t *testing.T) {
	mfs := NewMemoryFileSystem()
	data := []byte("abc")
	require.NoError(t, mfs.WriteFile("f", data))
	data[0] = 'z'

	content, err := mfs.ReadFile("f")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(content))
}

func TestMemoryFileSystem_FailWrites(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("out.json", "previous")
	boom := errors.New("disk full")
	mfs.FailWrites(boom)

	err := mfs.WriteFile("out.json", []byte("next"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	content, err := mfs.ReadFile("out.json")
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content), "failed write must not touch existing content")
	assert.Equal(t, 0, mfs.Writes())

	mfs.FailWrites(nil)
	require.NoError(t, mfs.WriteFile("out.json", []byte("next")))
}
