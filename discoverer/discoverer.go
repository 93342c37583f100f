// Package discoverer implements spec.md §4.1's VolumeDiscoverer: given a
// RootSet, it walks each configured root plus any lettered-drive candidates,
// and yields one Volume per directory that carries a slides container.
package discoverer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/debuti/bitslides/common"
	"github.com/debuti/bitslides/trace"
)

// Discover implements the algorithm in spec.md §4.1. Root-level and
// per-candidate I/O errors are logged as warnings and do not abort the run
// (spec.md §4.1 "Failure semantics", §7 "Discovery" errors).
func Discover(ctx context.Context, rs common.RootSet, logger common.ILogger, tr *trace.Tracer) ([]common.Volume, error) {
	keyword := rs.KeywordOrDefault()

	candidates := make([]string, 0, len(rs.Roots))
	candidates = append(candidates, rs.Roots...)
	candidates = append(candidates, common.DriveLetterRoots()...)

	// Each root gets its own slot so concurrent goroutines never touch a
	// shared slice header (spec.md §5: "all discovered root sets process in
	// parallel").
	perRoot := make([][]common.Volume, len(candidates))
	var rootWG sync.WaitGroup

	for i, root := range candidates {
		rootWG.Add(1)
		go func(i int, root string) {
			defer rootWG.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}
			perRoot[i] = discoverRoot(root, keyword, logger)
		}(i, root)
	}
	rootWG.Wait()

	seen := make(map[string]bool)
	var volumes []common.Volume
	for _, vols := range perRoot {
		for _, v := range vols {
			if seen[v.Name] {
				err := fmt.Errorf("%s at %s, keeping first occurrence: %w", v.Name, v.Path, common.ErrDuplicateVolumeName)
				logger.Log(common.LogWarning, err.Error())
				continue
			}
			seen[v.Name] = true
			volumes = append(volumes, v)
		}
	}
	for _, v := range volumes {
		tr.Emit(trace.Event{Kind: trace.EventNote, Note: "discovered volume " + v.Name})
	}
	return volumes, nil
}

// discoverRoot lists root's immediate children and tests each one for a
// slides container (spec.md §4.1 steps 1 and 3).
func discoverRoot(root, keyword string, logger common.ILogger) []common.Volume {
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Log(common.LogWarning, "root "+root+": "+err.Error())
		return nil
	}

	var volumes []common.Volume
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(root, entry.Name())
		vol, ok, err := probeCandidate(candidate, entry.Name(), keyword)
		if err != nil {
			logger.Log(common.LogWarning, "candidate "+candidate+": "+err.Error())
			continue
		}
		if !ok {
			continue
		}
		volumes = append(volumes, vol)
	}
	return volumes
}

// probeCandidate tests one directory for a slides container and, if present,
// reads its optional metadata file (spec.md §4.1 steps 3-4).
func probeCandidate(path, basename, keyword string) (common.Volume, bool, error) {
	info, err := os.Stat(filepath.Join(path, keyword))
	if os.IsNotExist(err) {
		return common.Volume{}, false, nil // absence -> skip silently
	}
	if err != nil {
		return common.Volume{}, false, err
	}
	if !info.IsDir() {
		return common.Volume{}, false, nil
	}

	vol := common.Volume{Name: basename, Path: path}

	meta, exists, err := common.LoadVolumeMetadata(filepath.Join(path, common.VolumeMetadataFileName))
	if err != nil {
		return common.Volume{}, false, err
	}
	if exists {
		if meta.Name != "" {
			vol.Name = meta.Name
		}
		vol.Disabled = meta.Disabled
	}

	if vol.Disabled {
		return common.Volume{}, false, nil
	}
	return vol, true, nil
}
