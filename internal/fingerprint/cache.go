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

package fingerprint

import "math"

// Cache precomputes the fingerprint of every integer below Size, so
// the kernel's inner loop can replace fingerprint(n) with a table
// read for every k and p partition it touches (each is always < Size
// by the C_size = 10^ceil(L/3) invariant); a multiplier m >= Size is
// computed directly by Get instead. Read-only after New returns;
// safe to share across worker goroutines without locking.
type Cache[F Value] struct {
	table []F
	size  uint64
	fn    func(uint64) F
}

// New builds the fingerprint cache for a product length L (number of
// decimal digits of the largest product in the matrix currently being
// searched). size is C_size = 10^ceil(L/3); fn is fingerprint.Wide or
// fingerprint.Narrow monomorphized to F. When enabled is false, New
// returns a zero-capacity cache that always falls back to fn, letting
// callers honor the CACHE on/off build-time toggle as a runtime flag
// without branching inside the kernel's lookups.
func New[F Value](l int, fn func(uint64) F, enabled bool) *Cache[F] {
	size := sizeFor(l)
	c := &Cache[F]{fn: fn}
	if !enabled {
		return c
	}
	c.size = size
	c.table = make([]F, size)
	for i := uint64(0); i < size; i++ {
		c.table[i] = fn(i)
	}
	return c
}

// sizeFor returns C_size = 10^ceil(L/3) for a product decimal length L.
func sizeFor(l int) uint64 {
	thirds := (l + 2) / 3
	return uint64(math.Pow10(thirds))
}

// PartitionConstant returns P_a = 10^floor(L/3), or C_size when
// floor(L/3) < 3, per the §3 sub-indexing constant used to split a
// product into p_hi2, p_hi1, p_lo and a multiplicand into k_hi, k_lo.
func PartitionConstant(l int) uint64 {
	third := l / 3
	if third < 3 {
		return sizeFor(l)
	}
	return uint64(math.Pow10(third))
}

// Size reports C_size, the cache's table length (0 when disabled).
func (c *Cache[F]) Size() uint64 { return c.size }

// Get returns the fingerprint of n: a table hit when n < C_size, a
// direct computation otherwise (or always, if the cache is disabled).
func (c *Cache[F]) Get(n uint64) F {
	if n < c.size {
		return c.table[n]
	}
	return c.fn(n)
}
