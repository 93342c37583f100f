package ste

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debuti/bitslides/common"
)

// removeEmptyDirsBottomUp walks the relative paths touched by a job and
// removes now-empty intermediate directories under root, deepest first. root
// itself is always preserved (spec.md §4.4 step 3: "source_root itself is
// preserved"). Adapted from azcopy's FolderDeletionManager
// (common/folderDeletionManager.go): that type tracks per-folder child counts
// across an entire job and deletes a folder the instant its last child is
// gone; bitslides' jobs are not long-lived enough to make that bookkeeping
// worthwhile, so this is the same "delete only if empty" policy applied once,
// after a job's files are all settled, walking deepest directories first.
func removeEmptyDirsBottomUp(root string, touchedRelDirs []string, logger common.ILogger) {
	dirs := map[string]bool{}
	for _, rel := range touchedRelDirs {
		d := filepath.Dir(rel)
		for d != "." && d != string(filepath.Separator) {
			dirs[d] = true
			d = filepath.Dir(d)
		}
	}
	ordered := make([]string, 0, len(dirs))
	for d := range dirs {
		ordered = append(ordered, d)
	}
	// Deepest (most path separators) first, so a child empties out before its
	// parent is tested.
	sort.Slice(ordered, func(i, j int) bool {
		return strings.Count(ordered[i], string(filepath.Separator)) > strings.Count(ordered[j], string(filepath.Separator))
	})

	for _, rel := range ordered {
		abs := filepath.Join(root, rel)
		if abs == root {
			continue
		}
		err := os.Remove(abs) // only succeeds if empty
		if err != nil && !os.IsNotExist(err) {
			logger.Log(common.LogDebug, "leaving non-empty directory "+abs)
		}
	}
}

// cleanStrayWIPFiles removes any leftover `.{name}.wip` files under dir,
// implementing the idempotence guarantee of spec.md §8 property 3 ("the
// second run performs no... new copies beyond cleaning stray WIP files") and
// the safety note in §5 ("WIP names are hidden and idempotently cleaned up on
// the next run").
func cleanStrayWIPFiles(ctx context.Context, dir string, logger common.ILogger) {
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d == nil || d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && strings.HasSuffix(base, ".wip") {
			if rmErr := os.Remove(path); rmErr != nil {
				logger.Log(common.LogWarning, "could not remove stray wip file "+path+": "+rmErr.Error())
			}
		}
		return nil
	})
}
