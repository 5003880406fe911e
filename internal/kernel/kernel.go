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

// Package kernel implements the per-tile fang-enumeration inner loop:
// for a closed product subrange of even decimal length, walk
// candidate multiplier/multiplicand pairs with incremental digit-sum
// updates and the mod-9/trailing-zero filters, handing every valid
// pair to the caller and every sealed product to the tree/list pair
// that deduplicates vampire numbers (§4.3, §4.4).
package kernel

import (
	"math"

	"github.com/jaskij/helsing/internal/fingerprint"
	"github.com/jaskij/helsing/internal/resultlist"
	"github.com/jaskij/helsing/internal/tree"
)

// Pair is one valid fang pair for a product, as handed to an optional
// per-pair observer (count-pairs/dump-pairs modes, §6).
type Pair struct {
	Product, Multiplier, Multiplicand uint64
}

// Scratch holds one worker's per-tile state: the shared, read-only
// fingerprint cache and the worker-local tree/list that are reset
// between tiles.
type Scratch[F fingerprint.Value] struct {
	Cache *fingerprint.Cache[F]
	Pa    uint64
	Fn    func(uint64) F

	Tree *tree.Tree
	List *resultlist.List

	// MinFangPairs gates which dedup'd products are worth keeping in
	// List; products below it are still counted but dropped on drain.
	MinFangPairs uint8

	// Dedup controls whether emitted pairs are inserted into Tree at
	// all. count-pairs/dump-pairs modes leave this false and rely
	// solely on OnPair; count-vampires/print-vampires set it true.
	// Selected once per matrix at the engine layer, never branched on
	// per verbosity-enum value inside the loop below (§9).
	Dedup bool

	// OnPair, if non-nil, is invoked for every valid fang pair found,
	// independent of Dedup.
	OnPair func(Pair)
}

// Reset clears Tree/List for the next tile.
func (s *Scratch[F]) Reset() {
	s.Tree = tree.New()
	s.List = resultlist.New()
}

// drainInto appends tr.Cleanup(threshold)'s descending output to
// sealed, keeping only products with at least minPairs fang pairs.
// Each later drain of a tile releases only products below the earlier
// thresholds, so sealed stays descending across all drains.
func drainInto(tr *tree.Tree, threshold uint64, minPairs uint8, sealed []uint64) []uint64 {
	for _, d := range tr.Cleanup(threshold) {
		if d.FangPairs >= minPairs {
			sealed = append(sealed, d.Value)
		}
	}
	return sealed
}

// Run enumerates every valid fang pair whose product lies in
// [pMin, pMax], a closed subrange of even decimal length, against
// multiplier ceiling fmax. It is the sole caller of s.Tree.Insert and
// the sole place cleanup is invoked; at return, s.List holds every
// product (within the tile) that has been fully sealed and met
// MinFangPairs, in ascending order.
func Run[F fingerprint.Value](pMin, pMax, fmax uint64, s *Scratch[F]) {
	if pMin > pMax || fmax == 0 {
		return
	}

	ms := isqrtCeil(pMin)
	Ms := isqrtFloor(pMax)
	pa := s.Pa
	var sealed []uint64

	for m := fmax; m >= ms; m-- {
		// Mod-9 multiplier filter: a valid vampire satisfies
		// m + k == m*k (mod 9); for m == 1 (mod 9) that reads
		// 1 + k == k (mod 9), which no k satisfies, so skipping these
		// multipliers (one residue class in nine) loses no pair.
		if m%9 == 1 {
			continue
		}

		kMin := ceilDiv(pMin, m)
		var kMax uint64
		if m >= Ms {
			kMax = pMax / m
		} else {
			kMax = m
		}

		for kMin <= kMax && !con9(m, kMin) {
			kMin++
		}
		if kMin > kMax {
			continue
		}

		p := m * kMin
		kLo := kMin % pa
		kHi := kMin / pa
		pLo := p % pa
		pHi1 := (p / pa) % pa
		pHi2 := p / (pa * pa)

		step9 := 9 * m
		fm := s.Cache.Get(m)

		for k := kMin; k <= kMax; k += 9 {
			lhs := fm + s.Cache.Get(kHi) + s.Cache.Get(kLo)
			rhs := s.Cache.Get(pHi2) + s.Cache.Get(pHi1) + s.Cache.Get(pLo)

			trailingZeroClash := m%10 == 0 && k%10 == 0
			if lhs == rhs && !trailingZeroClash {
				if s.OnPair != nil {
					s.OnPair(Pair{Product: p, Multiplier: m, Multiplicand: k})
				}
				if s.Dedup {
					s.Tree.Insert(p)
				}
			}

			// Incrementally advance k_lo/k_hi by one step of 9 (k_lo
			// never needs more than one rollover per step, since the
			// step is smaller than pa for every supported length).
			// p grows by 9*m per step, which can exceed pa, so its
			// three-way split is recomputed by division/mod rather
			// than carry-chained: still O(1) per iteration and far
			// cheaper than re-deriving a fingerprint from decimal
			// digits, which is the cost the cache lookups replace.
			kLo += 9
			if kLo >= pa {
				kLo -= pa
				kHi++
			}
			p += step9
			pLo = p % pa
			pHi1 = (p / pa) % pa
			pHi2 = p / (pa * pa)
		}

		if s.Dedup && m < Ms && m%10 == 0 {
			sealed = drainInto(s.Tree, p, s.MinFangPairs, sealed)
		}
	}

	if s.Dedup {
		sealed = drainInto(s.Tree, 0, s.MinFangPairs, sealed)
		// sealed is descending; push it in reverse so List is ascending (§4.6).
		for i := len(sealed) - 1; i >= 0; i-- {
			s.List.Push(sealed[i])
		}
	}
}

// con9 reports whether (m, k) passes the mod-9 pair filter:
// (m+k) mod 9 == (m*k) mod 9. Stepping k by 9 preserves both sides of
// this congruence (§9 Open Questions), so it is only evaluated while
// advancing k_min, never again inside the inner loop.
func con9(m, k uint64) bool {
	return (m+k)%9 == (m*k)%9
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

func isqrtFloor(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func isqrtCeil(n uint64) uint64 {
	r := isqrtFloor(n)
	if r*r == n {
		return r
	}
	return r + 1
}
