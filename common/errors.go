package common

import (
	"errors"
	"fmt"
	"os"
)

// Phase identifies which stage of the pipeline (spec.md §2) raised an error;
// StagedError.Error() prefixes the message with it.
type Phase string

const (
	PhaseConfiguration Phase = "configuration"
	PhaseDiscovery     Phase = "discovery"
	PhasePlanning      Phase = "planning"
	PhaseExecution     Phase = "execution"
)

// StagedError carries the context a leaf operation's error needs to be
// actionable from a run summary: which phase, which path, and the underlying
// cause. Modeled on how ste/md5Comparer.go and the rest of azcopy's transfer
// code wrap errors with transfer-specific context before logging them.
type StagedError struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *StagedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Phase, e.Path, e.Err)
}

func (e *StagedError) Unwrap() error { return e.Err }

func Stage(phase Phase, path string, err error) error {
	if err == nil {
		return nil
	}
	return &StagedError{Phase: phase, Path: path, Err: err}
}

// Sentinel errors. Of these, only ErrChecksumMismatch counts against the
// Executor's retry budget (as do timeouts and generic I/O errors, see
// Retryable); everything else is terminal (spec.md §4.4 "Retries").
var (
	ErrChecksumMismatch    = errors.New("checksum mismatch between source and destination")
	ErrDuplicateVolumeName = errors.New("duplicate volume name")
	ErrTriggerAlreadyTaken = errors.New("sync job trigger already taken")
	ErrNoViablePath        = errors.New("no direct volume or route available for this slide")
)

// Retryable reports whether err should count against a FileOp's retry budget
// rather than terminate the file immediately. Permission errors and "not a
// regular file" conditions are terminal per spec.md §4.4/§7.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrChecksumMismatch) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}
	return isTransientIOError(err)
}

// isTransientIOError treats permission and "does not exist" failures as
// terminal configuration problems, and anything else filesystem-shaped as a
// transient I/O error worth retrying (spec.md §4.4, §7).
func isTransientIOError(err error) bool {
	if os.IsPermission(err) || os.IsNotExist(err) {
		return false
	}
	var pe *os.PathError
	return errors.As(err, &pe)
}
