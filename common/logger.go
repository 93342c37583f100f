// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// ILogger is the interface every component (discoverer, indexer, planner,
// executor) takes to emit secondary, human-facing log lines. It is distinct
// from the Tracer (spec.md §6): ILogger is for operators reading stderr/a log
// file; the Tracer is the append-only, machine-parsable event sink every
// stage also writes to.
type ILogger interface {
	ShouldLog(level LogLevel) bool
	Log(level LogLevel, msg string)
	Panic(err error)
}

type ILoggerCloser interface {
	ILogger
	CloseLog()
}

type ILoggerResetable interface {
	OpenLog()
	MinimumLogLevel() LogLevel
	ILoggerCloser
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

// runLogger is the concrete ILoggerResetable used by the CLI: one log file per
// run, guarded by a mutex since multiple goroutines across volumes/slides/jobs
// log concurrently (spec.md §5 "Shared resources").
type runLogger struct {
	mu                sync.Mutex
	minimumLevelToLog LogLevel
	file              io.WriteCloser
	logFilePath       string
	logger            *log.Logger
}

func NewRunLogger(minimumLevelToLog LogLevel, logFilePath string) ILoggerResetable {
	return &runLogger{
		minimumLevelToLog: minimumLevelToLog,
		logFilePath:       logFilePath,
	}
}

func (l *runLogger) OpenLog() {
	if l.minimumLevelToLog == LogNone || l.logFilePath == "" {
		return
	}
	f, err := os.OpenFile(l.logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	PanicIfErr(err)
	l.file = f
	l.logger = log.New(l.file, "", log.LstdFlags|log.LUTC)
}

func (l *runLogger) MinimumLogLevel() LogLevel { return l.minimumLevelToLog }

func (l *runLogger) ShouldLog(level LogLevel) bool {
	if level == LogNone {
		return false
	}
	return level <= l.minimumLevelToLog
}

func (l *runLogger) CloseLog() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *runLogger) Log(level LogLevel, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logger != nil {
		l.logger.Println(msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

func (l *runLogger) Panic(err error) {
	l.Log(LogError, err.Error())
	panic(err)
}

// nopLogger discards everything; NewNopLogger hands one to tests. CLI runs
// always use a runLogger, at LogError when -v is omitted.
type nopLogger struct{}

func NewNopLogger() ILogger                     { return nopLogger{} }
func (nopLogger) ShouldLog(level LogLevel) bool  { return false }
func (nopLogger) Log(level LogLevel, msg string) {}
func (nopLogger) Panic(err error)                { panic(err) }

func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}
