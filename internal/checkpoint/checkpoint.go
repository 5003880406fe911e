// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package checkpoint persists and reloads the line-oriented checkpoint
// file of §6: a first "MIN MAX" line, then one "lmax_committed
// count_so_far" line per completed even-length subrange, so an
// interrupted run can resume by skipping every subrange it already
// finished. Output of the subrange in progress at the interruption is
// not recorded and is produced again on resume.
package checkpoint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jaskij/helsing/internal/herr"
)

// State is the parsed contents of a checkpoint file.
type State struct {
	Min, Max uint64
	// LastCommitted is the highest lmax committed so far across every
	// matrix already processed; zero if nothing has committed yet.
	LastCommitted uint64
	// Count is the running output counter as of LastCommitted.
	Count uint64
}

// Load reads a checkpoint file written by Writer.Save. A missing file
// is not an error: it reports ok=false so the caller starts fresh.
func Load(path string) (state State, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("%w: opening checkpoint: %v", herr.ErrIO, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return State{}, false, fmt.Errorf("%w: empty checkpoint file", herr.ErrIO)
	}
	minMax := strings.Fields(sc.Text())
	if len(minMax) != 2 {
		return State{}, false, fmt.Errorf("%w: malformed checkpoint header %q", herr.ErrIO, sc.Text())
	}
	min, err := strconv.ParseUint(minMax[0], 10, 64)
	if err != nil {
		return State{}, false, fmt.Errorf("%w: checkpoint header MIN: %v", herr.ErrIO, err)
	}
	max, err := strconv.ParseUint(minMax[1], 10, 64)
	if err != nil {
		return State{}, false, fmt.Errorf("%w: checkpoint header MAX: %v", herr.ErrIO, err)
	}
	st := State{Min: min, Max: max}

	for sc.Scan() {
		line := strings.Fields(sc.Text())
		if len(line) != 2 {
			continue
		}
		lmax, err := strconv.ParseUint(line[0], 10, 64)
		if err != nil {
			return State{}, false, fmt.Errorf("%w: checkpoint line lmax: %v", herr.ErrIO, err)
		}
		count, err := strconv.ParseUint(line[1], 10, 64)
		if err != nil {
			return State{}, false, fmt.Errorf("%w: checkpoint line count: %v", herr.ErrIO, err)
		}
		st.LastCommitted = lmax
		st.Count = count
	}
	if err := sc.Err(); err != nil {
		return State{}, false, fmt.Errorf("%w: reading checkpoint: %v", herr.ErrIO, err)
	}
	return st, true, nil
}

// Writer appends completed-subrange records to a checkpoint file, one
// per Save call. The CLI calls Save from the driver's SubrangeDone
// hook, after every worker of that subrange has returned; Writer takes
// no lock of its own.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter opens path for append, writing the "MIN MAX" header line
// only when the file is new (len 0): resuming a run must not
// duplicate the header.
func NewWriter(path string, min, max uint64) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: opening checkpoint for write: %v", herr.ErrIO, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat checkpoint: %v", herr.ErrIO, err)
	}
	w := &Writer{f: f, w: bufio.NewWriter(f)}
	if info.Size() == 0 {
		if _, err := fmt.Fprintf(w.w, "%d %d\n", min, max); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: writing checkpoint header: %v", herr.ErrIO, err)
		}
	}
	return w, nil
}

// Save appends one "lmax count" record and flushes it, so a crash
// after Save never loses that record; only the subrange in progress
// at the crash goes unrecorded.
func (w *Writer) Save(lmaxCommitted, count uint64) error {
	if _, err := fmt.Fprintf(w.w, "%d %d\n", lmaxCommitted, count); err != nil {
		return fmt.Errorf("%w: writing checkpoint record: %v", herr.ErrIO, err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: flushing checkpoint: %v", herr.ErrIO, err)
	}
	return nil
}

// Close releases the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

var _ io.Closer = (*Writer)(nil)
