// Package trace implements bitslides' Tracer (spec.md §4.5, §6): an
// append-only, time-stamped event sink that every pipeline stage writes to.
// Structurally this mirrors azcopy's job logger (common/logger.go in the
// teacher repo) — a single mutex-guarded *log.Logger behind one concrete type —
// narrowed to the event shape spec.md §8's testable properties need: one line
// per file transition or job boundary, never interleaved mid-line.
package trace

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/debuti/bitslides/common"
)

// EventKind enumerates the event vocabulary spec.md §4.5 requires: every file
// transition and every job boundary.
type EventKind string

const (
	EventJobStart     EventKind = "job-start"
	EventJobEnd       EventKind = "job-end"
	EventStartCopy    EventKind = "start-copy"
	EventChecksumOK   EventKind = "checksum-ok"
	EventChecksumFail EventKind = "checksum-fail"
	EventRename       EventKind = "rename"
	EventDeleteSrc    EventKind = "delete-src"
	EventRetry        EventKind = "retry"
	EventSkip         EventKind = "skip"
	EventFailed       EventKind = "failed"
	// EventNote covers stage-level informational events (volume discovered,
	// slide indexed, job planned) outside the strict file-transition/job-
	// boundary vocabulary spec.md §4.5 enumerates, kept in the same sink
	// since the tracer is consulted by every stage, not just the executor.
	EventNote EventKind = "note"
)

// Event is one line of the trace. Fields are optional where not applicable
// (e.g. Path is empty for job boundary events with no single file).
type Event struct {
	Time  time.Time
	Kind  EventKind
	Job   string
	Path  string
	Token string
	Note  string
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s kind=%s", e.Time.UTC().Format(time.RFC3339Nano), e.Kind)
	if e.Job != "" {
		fmt.Fprintf(&b, " job=%s", e.Job)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%q", e.Path)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " token=%s", e.Token)
	}
	if e.Note != "" {
		fmt.Fprintf(&b, " note=%q", e.Note)
	}
	return b.String()
}

// Tracer is a process-scoped sink with explicit construction and explicit
// teardown (spec.md §9 "Global state: None... not a global"). Concurrent
// writers are serialized by mu, matching spec.md §5's "tracer serializes
// writes internally" requirement.
type Tracer struct {
	mu      sync.Mutex
	out     io.WriteCloser
	logger  *log.Logger
	enabled bool
}

// New opens (creating if needed) the trace file produced by expanding
// pathTemplate's strftime placeholders against now. An empty pathTemplate
// disables tracing: every Emit becomes a no-op, per spec.md §6.
func New(pathTemplate string, now time.Time) (*Tracer, error) {
	if pathTemplate == "" {
		return &Tracer{enabled: false}, nil
	}
	path := ExpandStrftime(pathTemplate, now)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, common.Stage(common.PhaseConfiguration, path, err)
	}
	return &Tracer{
		out:     f,
		logger:  log.New(f, "", 0),
		enabled: true,
	}, nil
}

func (t *Tracer) Emit(e Event) {
	if t == nil || !t.enabled {
		return
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Println(e.String())
}

// Close flushes and closes the underlying file. Safe to call on a disabled
// tracer.
func (t *Tracer) Close() error {
	if t == nil || !t.enabled {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Close()
}

// ExpandStrftime renders pathTemplate's strftime placeholders against t (in
// UTC). Only the subset spec.md §6 names (%Y%m%d_%H%M%S) is expanded, each
// placeholder replaced by t formatted with the matching Go layout token; all
// other text in pathTemplate is kept as is.
func ExpandStrftime(pathTemplate string, t time.Time) string {
	u := t.UTC()
	return strings.NewReplacer(
		"%Y", u.Format("2006"),
		"%m", u.Format("01"),
		"%d", u.Format("02"),
		"%H", u.Format("15"),
		"%M", u.Format("04"),
		"%S", u.Format("05"),
	).Replace(pathTemplate)
}
