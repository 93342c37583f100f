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
	"context"

	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter bounds the number of simultaneous operations of one
// kind (jobs across the run, or files within one slide). Grounded on
// azcopy's SendLimiter (common/sendLimiter.go), generalized from "send slots"
// to any weighted resource spec.md §5 wants bounded ("implementation-chosen
// concurrency cap... to prevent head-of-line blocking and excessive file
// descriptor usage").
type ConcurrencyLimiter struct {
	sem *semaphore.Weighted
}

func NewConcurrencyLimiter(max int64) *ConcurrencyLimiter {
	if max <= 0 {
		max = 1
	}
	return &ConcurrencyLimiter{sem: semaphore.NewWeighted(max)}
}

func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *ConcurrencyLimiter) Release() {
	l.sem.Release(1)
}
