package common

import (
	"fmt"
	"path/filepath"
)

// DefaultKeyword is the slides-container directory name used when a RootSet's
// configuration does not override it.
const DefaultKeyword = "Slides"

// RootSet is the immutable configuration a run is built from: spec.md §3.
type RootSet struct {
	Roots           []string
	Keyword         string
	TracePathFormat string // strftime-style template; empty disables tracing
}

func (rs RootSet) KeywordOrDefault() string {
	if rs.Keyword == "" {
		return DefaultKeyword
	}
	return rs.Keyword
}

// Volume is a mounted storage location that carries a slides container.
// Immutable once constructed by the discoverer.
type Volume struct {
	Name     string
	Path     string
	Disabled bool
}

func (v Volume) String() string {
	return fmt.Sprintf("%s(%s)", v.Name, v.Path)
}

// Slide is a named mailbox subdirectory under one volume's slides container.
// Its Name is also the destination volume name (spec.md §3 invariants).
type Slide struct {
	Volume Volume
	Name   string // == destination volume name
	Route  string // optional intermediate-hop volume name; "" if none
}

// SyncJob is one planned move: the contents of Slide Name on Src move toward
// Dst, either straight there (Via == Dst) or via an intermediate hop.
type SyncJob struct {
	Src      Volume
	Dst      string // destination volume name
	Via      Volume // intermediate volume actually written to in this run
	Slide    string // == Dst, kept explicit so the executor never needs Slide records
	Kind     JobKind
	done     chan struct{}
	consumed bool
}

// NewSyncJob builds a job with a fresh one-shot completion channel.
func NewSyncJob(src Volume, dst string, via Volume, kind JobKind) *SyncJob {
	return &SyncJob{
		Src:   src,
		Dst:   dst,
		Via:   via,
		Slide: dst,
		Kind:  kind,
		done:  make(chan struct{}, 1),
	}
}

// TakeTrigger hands the caller the job's completion send-half exactly once.
// A redesign note from spec.md §9: the source pattern let the trigger be taken
// more than once; here a second take is a logic error, reported rather than
// silently tolerated.
func (j *SyncJob) TakeTrigger() (chan<- struct{}, error) {
	if j.consumed {
		return nil, fmt.Errorf("sync job %s->%s: %w", j.Src.Name, j.Dst, ErrTriggerAlreadyTaken)
	}
	j.consumed = true
	return j.done, nil
}

// Wait blocks until the job's executor reports completion through the
// trigger. If no executor ever takes the trigger and signals it, Wait blocks
// forever.
func (j *SyncJob) Wait() {
	<-j.done
}

func (j *SyncJob) String() string {
	return fmt.Sprintf("%s --[%s]--> %s (via %s)", j.Src.Name, j.Kind, j.Dst, j.Via.Name)
}

// FileOp is the transient per-file unit of work the Executor drives through
// the state machine in spec.md §4.4.
type FileOp struct {
	RelPath         string
	SourcePath      string
	DestPath        string
	CollisionPolicy CollisionPolicy
	IntegrityPolicy IntegrityPolicy
	State           FileState
	Token           Token
	Attempt         int
}

// WIPPath returns the hidden work-in-progress sibling of a final destination
// path. spec.md §9 fixes the source's WIP-naming bug: the WIP name must be
// hidden (dot-prefixed) and live alongside the final name so that the same
// directory-cleanup pass can remove stray ones.
func WIPPath(destPath string) string {
	dir, base := filepath.Split(destPath)
	return filepath.Join(dir, "."+base+".wip")
}
