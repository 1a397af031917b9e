package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider abstracts reading input files and replacing output files.
type FileSystemProvider interface {
	// Open opens the file at path for streaming reads.
	// The caller must close the returned reader.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file at path with data.
	// Readers observe either the previous content or all of data, never a
	// prefix. Missing parent directories are created.
	WriteFile(path string, data []byte) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
