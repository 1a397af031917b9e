package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return OutputFileMode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	modTime time.Time
}

// MemoryFileSystem implements FileSystemProvider in memory.
// Paths are cleaned with forward slashes; there are no directories, only files.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*memoryFile
	writeErr error
	writes   int
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string]*memoryFile)}
}

// AddFile stores content at filePath, replacing any existing file.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[normalize(filePath)] = &memoryFile{content: []byte(content), modTime: time.Now()}
}

// FailWrites makes every later WriteFile call return err. Pass nil to clear.
func (mfs *MemoryFileSystem) FailWrites(err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErr = err
}

// Writes returns how many WriteFile calls succeeded.
func (mfs *MemoryFileSystem) Writes() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.writes
}

func (mfs *MemoryFileSystem) lookup(filePath string) (*memoryFile, error) {
	f, ok := mfs.files[normalize(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return f, nil
}

func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	f, err := mfs.lookup(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	f, err := mfs.lookup(filePath)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(f.content), nil
}

func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if mfs.writeErr != nil {
		return fmt.Errorf("write %s: %w", filePath, mfs.writeErr)
	}
	mfs.files[normalize(filePath)] = &memoryFile{content: bytes.Clone(data), modTime: time.Now()}
	mfs.writes++
	return nil
}

func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	f, err := mfs.lookup(filePath)
	if err != nil {
		return nil, err
	}
	return &memoryFileInfo{
		name:    path.Base(normalize(filePath)),
		size:    int64(len(f.content)),
		modTime: f.modTime,
	}, nil
}

func normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// Verify MemoryFileSystem implements FileSystemProvider at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
