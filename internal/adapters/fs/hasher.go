package fs

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher tracks content digests of layer files so unchanged files can be
// skipped on reload.
type Hasher struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{hashes: make(map[string]uint64)}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Changed records the current digest of path and reports whether it differs
// from the previous one. Unreadable files count as changed.
func (h *Hasher) Changed(path string) bool {
	sum, err := h.ComputeFileHash(path)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		delete(h.hashes, path)
		return true
	}
	prev, seen := h.hashes[path]
	h.hashes[path] = sum
	return !seen || prev != sum
}
