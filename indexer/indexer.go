// Package indexer implements spec.md §4.2's SlideIndexer: given one Volume,
// it enumerates the slide subdirectories under its slides container and reads
// each slide's optional route hint.
package indexer

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/debuti/bitslides/common"
	"github.com/debuti/bitslides/trace"
)

// Index lists vol's slides container and returns one Slide per directory
// entry (spec.md §4.2 "Algorithm"). Non-directory entries are ignored
// ("Edge cases"). A slide named after vol itself is a valid inbox and is
// returned like any other.
func Index(ctx context.Context, vol common.Volume, keyword string, logger common.ILogger, tr *trace.Tracer) ([]common.Slide, error) {
	container := filepath.Join(vol.Path, keyword)
	entries, err := os.ReadDir(container)
	if err != nil {
		return nil, common.Stage(common.PhaseDiscovery, container, err)
	}

	slides := make([]common.Slide, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return slides, ctx.Err()
		default:
		}
		if !entry.IsDir() {
			continue
		}
		slidePath := filepath.Join(container, entry.Name())
		meta, exists, err := common.LoadSlideMetadata(filepath.Join(slidePath, common.SlideMetadataFileName))
		if err != nil {
			logger.Log(common.LogWarning, "slide "+slidePath+": "+err.Error())
			continue
		}
		s := common.Slide{Volume: vol, Name: entry.Name()}
		if exists {
			s.Route = meta.Route
		}
		slides = append(slides, s)
		tr.Emit(trace.Event{Kind: trace.EventNote, Note: "indexed slide " + vol.Name + "/" + s.Name})
	}
	return slides, nil
}

// IndexAll runs Index over every volume, used by the top-level runner to
// build the full slide topology the Planner cross-joins (spec.md §4.3).
// Volumes are indexed in parallel (spec.md §5: "within a root set, volumes
// process in parallel"), the same per-slot fan-out discoverer.Discover uses
// so concurrent goroutines never touch a shared map.
func IndexAll(ctx context.Context, volumes []common.Volume, keyword string, logger common.ILogger, tr *trace.Tracer) (map[string][]common.Slide, error) {
	perVolume := make([][]common.Slide, len(volumes))
	var wg sync.WaitGroup

	for i, v := range volumes {
		wg.Add(1)
		go func(i int, v common.Volume) {
			defer wg.Done()
			slides, err := Index(ctx, v, keyword, logger, tr)
			if err != nil {
				// A volume with an unreadable slides container is skipped,
				// not fatal to the run (spec.md §7 "Discovery" errors apply
				// equally here: logged and skipped, run continues).
				logger.Log(common.LogWarning, err.Error())
				return
			}
			perVolume[i] = slides
		}(i, v)
	}
	wg.Wait()

	bySrc := make(map[string][]common.Slide, len(volumes))
	for i, v := range volumes {
		if perVolume[i] != nil {
			bySrc[v.Name] = perVolume[i]
		}
	}
	return bySrc, nil
}
