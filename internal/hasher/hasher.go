// Package hasher computes content fingerprints used as the sole
// change-detection signal. Modification times and file sizes are never
// consulted: two files with identical bytes always fingerprint the same.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tradeblocks/blocksync/internal/adapter"
)

// Bytes returns the hex-encoded SHA-256 digest of b.
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// File reads the named file through fs and returns its contents together
// with their fingerprint.
func File(fs adapter.FileSystem, name string) ([]byte, string, error) {
	data, err := fs.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, Bytes(data), nil
}
