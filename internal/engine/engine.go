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

// Package engine runs the worker pool protocol of §4.6 over one
// matrix: Nthreads goroutines each loop acquiring a tile under the
// matrix's read mutex, running the fang-enumeration kernel into
// worker-local scratch state, and committing under the write mutex so
// output is released in strictly ascending tile (and therefore value)
// order regardless of which worker finishes first.
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jaskij/helsing/internal/fingerprint"
	"github.com/jaskij/helsing/internal/kernel"
	"github.com/jaskij/helsing/internal/resultlist"
	"github.com/jaskij/helsing/internal/tile"
)

// Emit is invoked once per committed tile, in ascending tile order,
// with that tile's deduplicated, ascending result list. It must not
// retain list beyond the call: the engine reuses no buffers across
// calls, but callers that stream output should consume list.Each
// rather than holding onto it.
type Emit func(list *resultlist.List) error

// PairObserver is invoked for every valid fang pair a worker finds,
// from whatever goroutine found it: callers needing a total order
// (dump-pairs) must sort downstream, since pair order across workers
// is not otherwise specified by §4.6 (only product order is).
type PairObserver func(kernel.Pair)

// Options configures one RunMatrix call.
type Options struct {
	Threads      int
	ProductLen   int // L: decimal length of products in this matrix
	MinFangPairs uint8
	Dedup        bool
	OnPair       PairObserver
}

// RunMatrix drives nThreads workers over mat until every tile is
// committed, calling emit for each tile's result in ascending order.
// It returns the first error raised by emit (via errgroup, which also
// cancels sibling goroutines' remaining tile loop on first error).
func RunMatrix[F fingerprint.Value](mat *tile.Matrix, cache *fingerprint.Cache[F], fn func(uint64) F, opts Options, emit Emit) error {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}
	pa := fingerprint.PartitionConstant(opts.ProductLen)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			scratch := &kernel.Scratch[F]{
				Cache:        cache,
				Pa:           pa,
				Fn:           fn,
				MinFangPairs: opts.MinFangPairs,
				Dedup:        opts.Dedup,
				OnPair:       opts.OnPair,
			}
			for {
				if ctx.Err() != nil {
					return nil
				}
				t, ok := mat.Acquire()
				if !ok {
					return nil
				}
				scratch.Reset()
				kernel.Run(t.LMin, t.LMax, mat.FMax, scratch)

				var emitErr error
				mat.Commit(t, scratch.List, func(done *tile.Tile) {
					if emitErr != nil {
						return
					}
					emitErr = emit(done.Result)
				})
				if emitErr != nil {
					return emitErr
				}
			}
		})
	}
	return g.Wait()
}
