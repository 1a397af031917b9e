package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Bytes returns the hex SHA-256 of content.
func Bytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Reader wraps an io.Reader and hashes everything read through it.
type Reader struct {
	r    io.Reader
	h    hash.Hash
	size int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.h.Write(p[:n])
		r.size += int64(n)
	}
	return n, err
}

// Sum returns the hex SHA-256 of the bytes read so far. It is the checksum
// of the whole input only once the underlying reader returned io.EOF.
func (r *Reader) Sum() string {
	return hex.EncodeToString(r.h.Sum(nil))
}

// Size returns the number of bytes read so far.
func (r *Reader) Size() int64 {
	return r.size
}
