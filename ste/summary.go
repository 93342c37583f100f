package ste

import "sync"

// summaryMutex accumulates per-file Summary counts from many goroutines
// without each caller needing to hand-roll its own mutex.
type summaryMutex struct {
	mu    sync.Mutex
	total Summary
}

func (m *summaryMutex) add(s Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total.FilesDone += s.FilesDone
	m.total.FilesSkipped += s.FilesSkipped
	m.total.FilesFailed += s.FilesFailed
}

func (m *summaryMutex) copyInto(dst *Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dst.FilesDone += m.total.FilesDone
	dst.FilesSkipped += m.total.FilesSkipped
	dst.FilesFailed += m.total.FilesFailed
}
