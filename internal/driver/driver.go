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

// Package driver walks the even-length subranges covering [min, max],
// setting up and tearing down one matrix per subrange and handing it
// to the worker-pool engine (§4.7).
package driver

import (
	"github.com/jaskij/helsing/internal/engine"
	"github.com/jaskij/helsing/internal/fingerprint"
	"github.com/jaskij/helsing/internal/resultlist"
	"github.com/jaskij/helsing/internal/tile"
)

// Subrange is one even-decimal-length slice of [min, max] the driver
// will search, e.g. [1000, 9999] for L=4.
type Subrange struct {
	LMin, LMax uint64
	Len        int // L, always even
}

// Subranges splits [min, max] into the even-length pieces the driver
// processes in turn. Odd-length boundary slivers never occur: each
// piece is truncated to the largest even-length boundary <= max, and
// a piece that would start mid odd-length block is advanced past it.
func Subranges(min, max uint64) []Subrange {
	var out []Subrange
	for lo := min; lo <= max; {
		l := decimalLength(lo)
		if l%2 != 0 {
			// advance to the next even-length boundary: e.g. lo=500
			// (length 3) becomes lo=1000 (length 4).
			next := pow10(l)
			if next == 0 || next > max {
				break
			}
			lo = next
			continue
		}
		hi := pow10(l) - 1
		if hi > max || hi == 0 {
			hi = max
		}
		out = append(out, Subrange{LMin: lo, LMax: hi, Len: l})
		if hi == max {
			break
		}
		lo = hi + 1
	}
	return out
}

func decimalLength(n uint64) int {
	if n == 0 {
		return 1
	}
	l := 0
	for n > 0 {
		l++
		n /= 10
	}
	return l
}

func pow10(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		if v > (1<<64-1)/10 {
			return 0
		}
		v *= 10
	}
	return v
}

// Options configures the end-to-end search.
type Options struct {
	Threads      int
	TileSize     uint64 // 0 selects auto-tiling
	MinFangPairs uint8
	CacheEnabled bool
	Wide         bool // fingerprint encoding: wide (u64) vs narrow (u32)

	Dedup  bool
	OnPair engine.PairObserver

	// StatusFn, if non-nil, is called with each subrange before it is
	// searched ("Checking interval: [lmin, lmax]", §6).
	StatusFn func(sub Subrange)

	// Resume, if non-nil, is consulted before each subrange: returning
	// a non-nil *uint64 overrides that subrange's LMin (checkpoint
	// resume, §6), letting the driver skip already-committed work.
	Resume func(sub Subrange) *uint64

	// SubrangeDone, if non-nil, is called after a subrange has fully
	// committed, before the next one starts: checkpoint granularity is
	// per-subrange, not per-tile, so a resumed run never skips a tile
	// that was in flight at crash time.
	SubrangeDone func(sub Subrange) error
}

// Emit is invoked once per committed tile across the whole search, in
// the global ascending order the driver guarantees by processing
// subranges and tiles in order.
type Emit func(list *resultlist.List) error

// Run walks every even-length subrange of [min, max] and searches it.
func Run(min, max uint64, opts Options, emit Emit) error {
	for _, sub := range Subranges(min, max) {
		if opts.Resume != nil {
			if resumeFrom := opts.Resume(sub); resumeFrom != nil {
				if *resumeFrom > sub.LMax {
					continue
				}
				sub.LMin = *resumeFrom
			}
		}
		if opts.StatusFn != nil {
			opts.StatusFn(sub)
		}
		if err := runSubrange(sub, opts, emit); err != nil {
			return err
		}
		if opts.SubrangeDone != nil {
			if err := opts.SubrangeDone(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func runSubrange(sub Subrange, opts Options, emit Emit) error {
	fangLen := sub.Len / 2
	mat := tile.New(sub.LMin, sub.LMax, fangLen, opts.Threads, opts.TileSize)

	if opts.Wide {
		cache := fingerprint.New(sub.Len, fingerprint.Wide, opts.CacheEnabled)
		return engine.RunMatrix(mat, cache, fingerprint.Wide, engine.Options{
			Threads:      opts.Threads,
			ProductLen:   sub.Len,
			MinFangPairs: opts.MinFangPairs,
			Dedup:        opts.Dedup,
			OnPair:       opts.OnPair,
		}, engine.Emit(emit))
	}
	cache := fingerprint.New(sub.Len, fingerprint.Narrow, opts.CacheEnabled)
	return engine.RunMatrix(mat, cache, fingerprint.Narrow, engine.Options{
		Threads:      opts.Threads,
		ProductLen:   sub.Len,
		MinFangPairs: opts.MinFangPairs,
		Dedup:        opts.Dedup,
		OnPair:       opts.OnPair,
	}, engine.Emit(emit))
}
