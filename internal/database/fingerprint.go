package database

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintFile returns the hex BLAKE3-256 digest of the file at path.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FingerprintFiles fingerprints a reference and a hypothesis document.
func FingerprintFiles(refPath, hypPath string) (Fingerprints, error) {
	ref, err := FingerprintFile(refPath)
	if err != nil {
		return Fingerprints{}, err
	}
	hyp, err := FingerprintFile(hypPath)
	if err != nil {
		return Fingerprints{}, err
	}
	return Fingerprints{Ref: ref, Hyp: hyp}, nil
}
