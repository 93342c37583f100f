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
	"encoding/json"

	"github.com/google/uuid"
)

// JobID identifies one run of the engine as a UUID that round-trips through
// its string and JSON forms. Trace file names and per-file Tokens do not
// use it.
type JobID uuid.UUID

func NewJobID() JobID {
	return JobID(uuid.New())
}

func (j JobID) IsEmpty() bool {
	return j == JobID{}
}

func ParseJobID(s string) (JobID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return JobID{}, err
	}
	return JobID(u), nil
}

func (j JobID) String() string {
	return uuid.UUID(j).String()
}

func (j JobID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(j).String())
}

func (j *JobID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	id, err := ParseJobID(s)
	if err != nil {
		return err
	}
	*j = id
	return nil
}

// Token correlates one file batch (a single file's move through the Executor's
// state machine) back to the planning generation and origin volume that
// produced it, for trace readers. It is deliberately lighter-weight than JobID:
// debug-only correlation, never persisted, never parsed back.
type Token struct {
	Origin string
	ID     uuid.UUID
}

func NewToken(origin string) Token {
	return Token{Origin: origin, ID: uuid.New()}
}

func (t Token) String() string {
	return t.Origin + "/" + t.ID.String()
}
