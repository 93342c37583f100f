//go:build windows

package common

import (
	"os"
)

// DriveLetterRoots returns every currently-live drive letter root (spec.md
// §4.1 step 2: "on platforms with lettered drives, additionally consider each
// live drive letter as a root candidate").
func DriveLetterRoots() []string {
	var roots []string
	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + `:\`
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			roots = append(roots, root)
		}
	}
	return roots
}
