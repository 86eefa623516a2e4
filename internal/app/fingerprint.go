package app

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash"
)

// FileFingerprint returns a stable hex digest of a file's full contents.
// Equal bytes always produce equal digests, regardless of path or mtime.
func FileFingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
