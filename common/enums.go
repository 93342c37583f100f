package common

import (
	"reflect"

	"github.com/JeffreyRichter/enum/enum"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// LogLevel controls the verbosity of the operator-facing ILogger. The tracer
// has no level: it records every event it is given.
type LogLevel uint8

const (
	LogNone LogLevel = iota
	LogError
	LogWarning
	LogInfo
	LogDebug
)

var ELogLevel = LogLevel(LogNone)

func (LogLevel) None() LogLevel    { return LogLevel(LogNone) }
func (LogLevel) Error() LogLevel   { return LogLevel(LogError) }
func (LogLevel) Warning() LogLevel { return LogLevel(LogWarning) }
func (LogLevel) Info() LogLevel    { return LogLevel(LogInfo) }
func (LogLevel) Debug() LogLevel   { return LogLevel(LogDebug) }

func (ll LogLevel) String() string {
	return enum.StringInt(ll, reflect.TypeOf(ll))
}

func (ll *LogLevel) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(ll), s, true, true)
	if err == nil {
		*ll = val.(LogLevel)
	}
	return err
}

// FromVerbosityCount maps the CLI's repeated -v flag count to a LogLevel.
func FromVerbosityCount(n int) LogLevel {
	switch {
	case n <= 0:
		return LogError
	case n == 1:
		return LogWarning
	case n == 2:
		return LogInfo
	default:
		return LogDebug
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// CollisionPolicy governs what the Executor does when a destination path
// already exists (spec.md §4.4 step 2b).
type CollisionPolicy uint8

const (
	CollisionSkipIfEqualOverwriteIfDifferent CollisionPolicy = iota
	CollisionAlwaysSkip
	CollisionAlwaysOverwrite
	CollisionFail
)

var ECollisionPolicy = CollisionPolicy(CollisionSkipIfEqualOverwriteIfDifferent)

func (CollisionPolicy) SkipIfEqualOverwriteIfDifferent() CollisionPolicy {
	return CollisionPolicy(CollisionSkipIfEqualOverwriteIfDifferent)
}
func (CollisionPolicy) AlwaysSkip() CollisionPolicy       { return CollisionPolicy(CollisionAlwaysSkip) }
func (CollisionPolicy) AlwaysOverwrite() CollisionPolicy  { return CollisionPolicy(CollisionAlwaysOverwrite) }
func (CollisionPolicy) Fail() CollisionPolicy             { return CollisionPolicy(CollisionFail) }

func (c CollisionPolicy) String() string {
	return enum.StringInt(c, reflect.TypeOf(c))
}

func (c *CollisionPolicy) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(c), s, true, true)
	if err == nil {
		*c = val.(CollisionPolicy)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// IntegrityPolicy selects whether files are staged through a work-in-progress
// name before becoming visible under their final name (spec.md §4.4 step 2c).
type IntegrityPolicy uint8

const (
	IntegritySafe IntegrityPolicy = iota
	IntegrityDirect
)

var EIntegrityPolicy = IntegrityPolicy(IntegritySafe)

func (IntegrityPolicy) Safe() IntegrityPolicy   { return IntegrityPolicy(IntegritySafe) }
func (IntegrityPolicy) Direct() IntegrityPolicy { return IntegrityPolicy(IntegrityDirect) }

func (i IntegrityPolicy) String() string {
	return enum.StringInt(i, reflect.TypeOf(i))
}

func (i *IntegrityPolicy) Parse(s string) error {
	val, err := enum.ParseInt(reflect.TypeOf(i), s, true, true)
	if err == nil {
		*i = val.(IntegrityPolicy)
	}
	return err
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// JobKind distinguishes direct jobs (destination mounted now) from routed jobs
// (forwarded through an intermediate volume). spec.md §4.3 requires direct jobs
// to be scheduled before routed jobs for the same slide.
type JobKind uint8

const (
	JobDirect JobKind = iota
	JobRouted
)

var EJobKind = JobKind(JobDirect)

func (JobKind) Direct() JobKind { return JobKind(JobDirect) }
func (JobKind) Routed() JobKind { return JobKind(JobRouted) }

func (k JobKind) String() string {
	return enum.StringInt(k, reflect.TypeOf(k))
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// FileState is the per-file state machine described in spec.md §4.4.
type FileState uint8

const (
	FilePending FileState = iota
	FileChecksummingSource
	FileCopying
	FileChecksummingDest
	FileRenaming
	FileDeletingSource
	FileDone
	FileSkipped
	FileFailed
)

var EFileState = FileState(FilePending)

func (FileState) Pending() FileState             { return FileState(FilePending) }
func (FileState) ChecksummingSource() FileState   { return FileState(FileChecksummingSource) }
func (FileState) Copying() FileState              { return FileState(FileCopying) }
func (FileState) ChecksummingDest() FileState     { return FileState(FileChecksummingDest) }
func (FileState) Renaming() FileState             { return FileState(FileRenaming) }
func (FileState) DeletingSource() FileState       { return FileState(FileDeletingSource) }
func (FileState) Done() FileState                 { return FileState(FileDone) }
func (FileState) Skipped() FileState              { return FileState(FileSkipped) }
func (FileState) Failed() FileState               { return FileState(FileFailed) }

func (s FileState) String() string {
	return enum.StringInt(s, reflect.TypeOf(s))
}

func (s FileState) Terminal() bool {
	return s == EFileState.Done() || s == EFileState.Skipped() || s == EFileState.Failed()
}
