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

// Package fingerprint packs the nonzero-digit multiset of a decimal
// integer into a single machine word that supports addition as
// multiset union. Two encodings are provided, selected by the type
// parameter:
//
//   - Wide (uint64): one 7-bit field per nonzero digit 1..9.
//   - Narrow (uint32): a base-11 positional number, one digit per
//     position, 9 positions.
//
// Both satisfy Value; composing the fingerprints of two fangs with +
// yields the fingerprint of their digit-concatenation, which is what
// lets the fang-enumeration kernel replace per-digit work with a
// handful of table lookups and additions.
package fingerprint

// Value is the set of concrete fingerprint representations.
// Monomorphized at the call site (like hwy.Lanes in the teacher's
// SIMD packages), not dispatched dynamically inside the hot loop.
type Value interface {
	~uint32 | ~uint64
}

// narrowBase is the field radix for the narrow encoding:
// B = floor(2^(32/9)) = 11.
const narrowBase = 11

// Wide packs n's nonzero decimal digits into a 64-bit value with one
// 7-bit field per digit 1..9. A field saturates at 127 occurrences of
// its digit, far above the <=7 digits any operand sees for product
// lengths this engine supports (L <= 20).
func Wide(n uint64) uint64 {
	var acc uint64
	for n > 0 {
		d := n % 10
		n /= 10
		if d != 0 {
			acc += 1 << ((d - 1) * 7)
		}
	}
	return acc
}

// Narrow packs n's nonzero decimal digits into a base-11 positional
// number with one position per digit 1..9. A position saturates at 10
// occurrences of its digit (narrowBase-1), which bounds the narrow
// encoding to products of at most 10 digits (see herr.ErrCapacityExceeded).
func Narrow(n uint64) uint32 {
	var cnt [9]uint32
	for n > 0 {
		d := n % 10
		n /= 10
		if d != 0 {
			cnt[d-1]++
		}
	}
	var acc uint32
	mul := uint32(1)
	for i := 0; i < 9; i++ {
		acc += cnt[i] * mul
		mul *= narrowBase
	}
	return acc
}

// Saturated reports whether encoding n would overflow a codec field:
// more than 127 occurrences of one digit for the wide encoding, or
// more than narrowBase-1 (10) for the narrow encoding. A correctness
// precondition, checked only from debug-build assertions and tests,
// never on the hot path: every operand the kernel fingerprints has at
// most ceil(L/3) <= 7 digits for L <= 20, far below either limit.
func Saturated(n uint64, wide bool) bool {
	var cnt [9]int
	for n > 0 {
		d := n % 10
		n /= 10
		if d != 0 {
			cnt[d-1]++
		}
	}
	limit := narrowBase - 1
	if wide {
		limit = 127
	}
	for _, c := range cnt {
		if c > limit {
			return true
		}
	}
	return false
}
