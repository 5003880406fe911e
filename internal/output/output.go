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

// Package output implements the closed set of verbosity modes of §6
// and §9: a tagged enum branched on at the matrix/driver level, never
// inside the fang-enumeration kernel.
package output

import (
	"bufio"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jaskij/helsing/internal/herr"
	"github.com/jaskij/helsing/internal/kernel"
	"github.com/jaskij/helsing/internal/resultlist"
)

// Mode is the closed variant set {CountPairs, DumpPairs, CountVampires,
// PrintVampires} of §9: modeled as a tagged enum, not dynamic dispatch.
type Mode int

const (
	CountPairs Mode = iota
	DumpPairs
	CountVampires
	PrintVampires
)

// ParseMode maps a CLI --mode value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "count-pairs":
		return CountPairs, nil
	case "dump-pairs":
		return DumpPairs, nil
	case "count-vampires":
		return CountVampires, nil
	case "print-vampires":
		return PrintVampires, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", herr.ErrInputParse, s)
	}
}

// Sink streams one search's results to stdout/stderr according to
// Mode, tallying a running count and an optional CRC-32 checksum of
// the bytes written to stdout (§1's "optional checksumming of the
// result stream", carried here as a SUPPLEMENTED FEATURE).
type Sink struct {
	mode     Mode
	out      *bufio.Writer
	checksum hash.Hash32 // nil unless checksumming is enabled
	index    uint64
	count    uint64
	p        *message.Printer
}

// NewSink returns a Sink writing to w in the given mode. When
// checksum is true, every byte written to w is folded into a running
// IEEE CRC-32, reported by ReportChecksum.
func NewSink(w io.Writer, mode Mode, checksum bool) *Sink {
	s := &Sink{
		mode: mode,
		p:    message.NewPrinter(language.English),
	}
	dst := w
	if checksum {
		s.checksum = crc32.NewIEEE()
		dst = io.MultiWriter(w, s.checksum)
	}
	s.out = bufio.NewWriter(dst)
	return s
}

// OnPair handles one fang pair, used directly by count-pairs/dump-pairs
// modes (the kernel's OnPair observer) — never routed through the
// product tree.
func (s *Sink) OnPair(p kernel.Pair) {
	switch s.mode {
	case CountPairs:
		s.count++
	case DumpPairs:
		s.count++
		fmt.Fprintf(s.out, "%d = %d x %d\n", p.Product, p.Multiplier, p.Multiplicand)
	}
}

// Emit handles one committed tile's deduplicated result list, used by
// count-vampires/print-vampires modes as the driver's Emit callback.
func (s *Sink) Emit(list *resultlist.List) error {
	var emitErr error
	list.Each(func(v uint64) {
		if emitErr != nil {
			return
		}
		s.count++
		switch s.mode {
		case PrintVampires:
			s.index++
			if _, err := fmt.Fprintf(s.out, "%d %d\n", s.index, v); err != nil {
				emitErr = fmt.Errorf("%w: %v", herr.ErrIO, err)
			}
		case CountVampires:
			// tallied via s.count only; no per-value output.
		}
	})
	return emitErr
}

// Flush flushes buffered stdout output.
func (s *Sink) Flush() error {
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("%w: %v", herr.ErrIO, err)
	}
	return nil
}

// Count returns the running total (pairs for *Pairs modes, distinct
// vampire numbers for *Vampires modes).
func (s *Sink) Count() uint64 { return s.count }

// ReportFound writes the final "Found: N ..." status line to stderr
// per §6, formatted with golang.org/x/text/message for locale-aware
// thousands separators on large counts.
func (s *Sink) ReportFound(stderr io.Writer) {
	p := s.p
	switch s.mode {
	case CountPairs:
		p.Fprintf(stderr, "Found: %d valid fang pairs.\n", s.count)
	case CountVampires:
		p.Fprintf(stderr, "Found: %d vampire numbers.\n", s.count)
	}
}

// ReportChecksum writes "Checksum: %08x" to stderr when checksumming
// was enabled; a no-op otherwise.
func (s *Sink) ReportChecksum(stderr io.Writer) {
	if s.checksum == nil {
		return
	}
	fmt.Fprintf(stderr, "Checksum: %08x\n", s.checksum.Sum32())
}
