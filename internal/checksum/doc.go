// Package checksum fingerprints input files with SHA-256.
//
// Reader hashes the bytes it passes through, so a file can be fingerprinted
// while it is streamed into the database instead of being read twice:
//
//	r := checksum.NewReader(f)
//	// ... consume r to EOF ...
//	log.Printf("%s sha256 %s (%d bytes)", path, r.Sum(), r.Size())
//
// # Thread Safety
//
// Reader is NOT safe for concurrent use. Bytes is.
package checksum
