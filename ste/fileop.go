package ste

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/debuti/bitslides/common"
	"github.com/debuti/bitslides/trace"
)

// processFile drives one file through the state machine in spec.md §4.4:
//
//	Pending -> Checksumming(src) -> Copying -> Checksumming(dst)
//	    -> [safe? Rename] -> DeleteSrc -> Done
//	                      -> Discard WIP -> Retry (<=N) -> Failed
//
// It never returns an error: a failed file is traced and counted, and does
// not abort the job (spec.md §4.4 "Terminal states").
func (e *Executor) processFile(ctx context.Context, job *common.SyncJob, sourceRoot, destRoot, rel string) Summary {
	op := common.FileOp{
		RelPath:         rel,
		SourcePath:      filepath.Join(sourceRoot, rel),
		DestPath:        filepath.Join(destRoot, rel),
		CollisionPolicy: e.cfg.CollisionPolicy,
		IntegrityPolicy: e.cfg.IntegrityPolicy,
		State:           common.EFileState.Pending(),
		Token:           common.NewToken(job.Src.Name),
	}

	for attempt := 1; attempt <= e.cfg.RetryBudget; attempt++ {
		op.Attempt = attempt
		fileCtx, cancel := context.WithTimeout(ctx, e.cfg.PerFileTimeout)
		state, err := e.attemptFile(fileCtx, op)
		cancel()

		if err == nil {
			switch state {
			case common.EFileState.Done():
				return Summary{FilesDone: 1}
			case common.EFileState.Skipped():
				return Summary{FilesSkipped: 1}
			}
		}

		if err != nil && !common.Retryable(err) {
			e.tracer.Emit(trace.Event{Kind: trace.EventFailed, Job: job.String(), Path: op.RelPath, Token: op.Token.String(), Note: err.Error()})
			e.logger.Log(common.LogError, "file "+op.SourcePath+": "+err.Error())
			return Summary{FilesFailed: 1}
		}

		if attempt < e.cfg.RetryBudget {
			e.tracer.Emit(trace.Event{Kind: trace.EventRetry, Job: job.String(), Path: op.RelPath, Token: op.Token.String(), Note: err.Error()})
		}
	}

	e.tracer.Emit(trace.Event{Kind: trace.EventFailed, Job: job.String(), Path: op.RelPath, Token: op.Token.String(), Note: "retry budget exhausted"})
	e.logger.Log(common.LogError, "file "+op.SourcePath+": retry budget exhausted")
	return Summary{FilesFailed: 1}
}

// attemptFile runs one attempt of the state machine and reports the
// resulting terminal-for-this-attempt state: Done, Skipped, or an error that
// the caller will classify as retryable or terminal.
func (e *Executor) attemptFile(ctx context.Context, op common.FileOp) (common.FileState, error) {
	if info, err := os.Lstat(op.SourcePath); err != nil {
		return common.EFileState.Failed(), err
	} else if !info.Mode().IsRegular() {
		return common.EFileState.Failed(), os.ErrInvalid // "not a file": terminal (spec.md §4.4 "Retries")
	}

	if err := os.MkdirAll(filepath.Dir(op.DestPath), 0755); err != nil {
		return common.EFileState.Failed(), err
	}

	if _, err := os.Lstat(op.DestPath); err == nil {
		return e.resolveCollision(ctx, op)
	} else if !os.IsNotExist(err) {
		return common.EFileState.Failed(), err
	}

	return e.stageAndFinalize(ctx, op)
}

// resolveCollision applies spec.md §4.4 step 2b's collision policy when the
// destination path already exists.
func (e *Executor) resolveCollision(ctx context.Context, op common.FileOp) (common.FileState, error) {
	switch op.CollisionPolicy {
	case common.ECollisionPolicy.AlwaysSkip():
		e.tracer.Emit(trace.Event{Kind: trace.EventSkip, Path: op.RelPath, Token: op.Token.String(), Note: "always-skip policy"})
		return common.EFileState.Skipped(), nil

	case common.ECollisionPolicy.Fail():
		return common.EFileState.Failed(), os.ErrExist

	case common.ECollisionPolicy.AlwaysOverwrite():
		return e.stageAndFinalize(ctx, op)

	default: // skip-if-equal, overwrite-if-different (the spec's default)
		srcSum, err := checksumFile(op.SourcePath)
		if err != nil {
			return common.EFileState.Failed(), err
		}
		destSum, err := checksumFile(op.DestPath)
		if err != nil {
			return common.EFileState.Failed(), err
		}
		if checksumsEqual(srcSum, destSum) {
			// Already arrived on a prior run: remove the now-redundant
			// source and move on (spec.md §4.4 step 2b).
			if err := os.Remove(op.SourcePath); err != nil {
				return common.EFileState.Failed(), err
			}
			e.tracer.Emit(trace.Event{Kind: trace.EventSkip, Path: op.RelPath, Token: op.Token.String(), Note: "destination already matches"})
			return common.EFileState.Skipped(), nil
		}
		return e.stageAndFinalize(ctx, op)
	}
}

// stageAndFinalize implements spec.md §4.4 step 2c's integrity protocol: copy
// to a WIP path (safe mode) or straight to the final path, verify checksums,
// rename, then delete the source. Only on full success is the source removed
// (spec.md §3 invariant: "No source file is deleted before its destination
// copy has been verified byte-for-byte").
func (e *Executor) stageAndFinalize(ctx context.Context, op common.FileOp) (common.FileState, error) {
	safe := op.IntegrityPolicy == common.EIntegrityPolicy.Safe()
	writePath := op.DestPath
	if safe {
		writePath = common.WIPPath(op.DestPath)
	}

	e.tracer.Emit(trace.Event{Kind: trace.EventStartCopy, Path: op.RelPath, Token: op.Token.String()})

	srcSum, err := checksumFile(op.SourcePath)
	if err != nil {
		return common.EFileState.Failed(), err
	}

	if err := copyFile(ctx, op.SourcePath, writePath); err != nil {
		_ = os.Remove(writePath)
		return common.EFileState.Failed(), err
	}

	destSum, err := checksumFile(writePath)
	if err != nil {
		_ = os.Remove(writePath)
		return common.EFileState.Failed(), err
	}

	if err := checkChecksums(srcSum, destSum); err != nil {
		e.tracer.Emit(trace.Event{Kind: trace.EventChecksumFail, Path: op.RelPath, Token: op.Token.String()})
		_ = os.Remove(writePath) // discard WIP/partial file; caller retries (spec.md §4.4)
		return common.EFileState.Failed(), err
	}
	e.tracer.Emit(trace.Event{Kind: trace.EventChecksumOK, Path: op.RelPath, Token: op.Token.String()})

	if safe {
		if err := os.Rename(writePath, op.DestPath); err != nil {
			return common.EFileState.Failed(), err
		}
		e.tracer.Emit(trace.Event{Kind: trace.EventRename, Path: op.RelPath, Token: op.Token.String()})
	}

	if err := os.Remove(op.SourcePath); err != nil {
		return common.EFileState.Failed(), err
	}
	e.tracer.Emit(trace.Event{Kind: trace.EventDeleteSrc, Path: op.RelPath, Token: op.Token.String()})

	return common.EFileState.Done(), nil
}

// copyFile streams src's bytes to dst, honoring cancellation mid-copy
// (spec.md §5 "Cancellation": "in-flight file operations... aborted mid-copy
// with the WIP file left on disk"). The destination is left under dst's exact
// name — WIP or final, whichever the caller passed — never partially renamed.
func copyFile(ctx context.Context, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, &contextReader{ctx: ctx, r: in})
	return err
}

// contextReader aborts a Read once ctx is done, so a cancelled copy stops
// instead of finishing and being renamed into place; stageAndFinalize then
// removes the partial file.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	select {
	case <-c.ctx.Done():
		return 0, c.ctx.Err()
	default:
	}
	return c.r.Read(p)
}
