package ste

import (
	"bytes"
	"crypto/sha256"
	"io"
	"os"

	"github.com/debuti/bitslides/common"
)

// checksumFile streams path's contents through SHA-256 (spec.md §4.4 step 2c:
// "Compute the source checksum (SHA-256)... and the destination checksum").
func checksumFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// checksumsEqual compares two already-computed checksums, mirroring the
// compare-then-branch shape of azcopy's md5Comparer (ste/md5Comparer.go in
// the teacher repo), narrowed to bitslides' single algorithm and no
// missing-hash tolerance: a local file's checksum is always computable.
func checksumsEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// checkChecksums returns common.ErrChecksumMismatch, unwrapped, if the two
// checksums differ.
func checkChecksums(expected, actual []byte) error {
	if !checksumsEqual(expected, actual) {
		return common.ErrChecksumMismatch
	}
	return nil
}
