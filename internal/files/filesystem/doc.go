// Package filesystem provides the file access both jobs go through.
//
// The Loader only opens files for reading; the Reporter only replaces one
// file. Keeping that surface behind FileSystemProvider lets the services be
// tested against MemoryFileSystem without touching disk.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
