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

// Package tile decomposes one even-length product subrange into
// contiguous tiles and coordinates their assignment and commit across
// worker goroutines through two mutexes, exactly as specified: one
// guarding the read side (tile assignment), one guarding the write
// side (result commit in ascending tile order).
package tile

import (
	"math"
	"math/bits"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sys/cpu"

	"github.com/jaskij/helsing/internal/resultlist"
)

// MaxTileSize caps the size of a single auto-sized tile, bounding
// peak per-worker memory (O(|tile| x fang-pair density)).
const MaxTileSize = 1e11 - 1

// Tile is a contiguous closed product subrange and its eventual
// result. Result is nil until exactly one worker has finished
// processing the tile; nil is the sentinel distinguishing "not yet
// processed" from "processed with zero vampire numbers found", which
// is represented by a non-nil, empty *resultlist.List.
type Tile struct {
	LMin, LMax uint64
	Result     *resultlist.List
}

// Matrix is the ordered array of tiles covering one even product
// length. NextAssign/NextCommit maintain
// 0 <= NextCommit <= NextAssign <= len(Tiles) at every observation
// point reachable while R or W is held.
type Matrix struct {
	Tiles      []*Tile
	NextAssign int
	NextCommit int
	FMax       uint64

	R sync.Mutex // guards Tiles (read access) and NextAssign
	_ cpu.CacheLinePad // keeps R and W off the same cache line: every worker hits R on every Acquire
	W sync.Mutex       // guards Tile.Result and NextCommit
}

// New builds a matrix covering [lmin, lmax], an even-length product
// subrange, for a search using fangLen-digit fangs. tileSize == 0
// selects the auto-tiling policy of §4.5 (T sized from nThreads);
// any other value is used directly as T, generalizing the source's
// binary auto/single-tile choice into a runtime knob (both are capped
// at MaxTileSize).
func New(lmin, lmax uint64, fangLen int, nThreads int, tileSize uint64) *Matrix {
	fmax := pow10(fangLen)
	if fmax == 0 {
		// fangLen spans the full width; there is no larger fmax to clamp to.
		fmax = math.MaxUint64
	} else if hi, sq := bits.Mul64(fmax, fmax); hi == 0 && sq < lmax {
		// no fangLen-digit product exceeds fmax^2
		lmax = sq
	}

	m := &Matrix{FMax: fmax}
	if lmin > lmax {
		return m
	}

	t := tileSize
	if t == 0 {
		span := lmax - lmin + 1
		denom := uint64(4*nThreads + 2)
		t = lo.Clamp(span/denom, 1, MaxTileSize)
	} else {
		t = lo.Clamp(t, 1, MaxTileSize)
	}

	for start := lmin; start <= lmax; {
		hi := start + t - 1
		if hi > lmax || hi < start {
			hi = lmax
		}
		m.Tiles = append(m.Tiles, &Tile{LMin: start, LMax: hi})
		if hi == lmax {
			break
		}
		start = hi + 1
	}
	return m
}

// pow10 returns 10^n as a uint64, or 0 on overflow (n too large for
// uint64 to hold 10^n, signalling "no meaningful clamp").
func pow10(n int) uint64 {
	if n < 0 || n > 19 {
		return 0
	}
	v := uint64(1)
	for i := 0; i < n; i++ {
		if v > math.MaxUint64/10 {
			return 0
		}
		v *= 10
	}
	return v
}

// Acquire assigns the next unassigned tile to the caller under R, or
// reports ok=false once every tile has been handed out.
func (m *Matrix) Acquire() (t *Tile, ok bool) {
	m.R.Lock()
	defer m.R.Unlock()
	if m.NextAssign >= len(m.Tiles) {
		return nil, false
	}
	t = m.Tiles[m.NextAssign]
	m.NextAssign++
	return t, true
}

// Commit stores result on t and, under W, drains every tile starting
// at NextCommit whose result is now present, invoking emit on each in
// strictly ascending tile-index (hence ascending value) order before
// freeing it.
func (m *Matrix) Commit(t *Tile, result *resultlist.List, emit func(*Tile)) {
	m.W.Lock()
	defer m.W.Unlock()
	t.Result = result
	for m.NextCommit < len(m.Tiles) {
		cur := m.Tiles[m.NextCommit]
		if cur.Result == nil {
			break
		}
		emit(cur)
		cur.Result = nil
		m.NextCommit++
	}
}

// Done reports whether every tile has been committed.
func (m *Matrix) Done() bool {
	m.W.Lock()
	defer m.W.Unlock()
	return m.NextCommit >= len(m.Tiles)
}
