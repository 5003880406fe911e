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

// Package resultlist implements the ordered, append-only sequence of
// confirmed vampire numbers produced while one tile is processed: a
// singly-linked chain of fixed-capacity buckets, so a worker never
// needs one large contiguous allocation for a tile's results.
package resultlist

// BucketSize is the nominal capacity of one bucket in the chain
// (LINK_SIZE in the source design).
const BucketSize = 100

type bucket struct {
	values [BucketSize]uint64
	n      int
	next   *bucket
}

// List is a singly-linked, append-only sequence of values in ascending
// insertion order. A tile's worker appends to it as the product tree
// is drained (§4.4); ownership transfers to the tile on commit and to
// the output stage on emit.
type List struct {
	head, tail *bucket
	size       int
}

// New returns an empty result list.
func New() *List { return &List{} }

// Push appends value to the list. tree.Tree.Cleanup hands back sealed
// products in descending order; callers push them in reverse so the
// list itself stays a plain ascending append log, matching the
// ordering guarantee the commit pipeline relies on (§4.6).
func (l *List) Push(value uint64) {
	if l.tail == nil || l.tail.n == BucketSize {
		b := &bucket{}
		if l.tail != nil {
			l.tail.next = b
		}
		l.tail = b
		if l.head == nil {
			l.head = b
		}
	}
	l.tail.values[l.tail.n] = value
	l.tail.n++
	l.size++
}

// Len returns the number of values held.
func (l *List) Len() int { return l.size }

// Each calls fn for every value in ascending insertion order.
func (l *List) Each(fn func(uint64)) {
	for b := l.head; b != nil; b = b.next {
		for i := 0; i < b.n; i++ {
			fn(b.values[i])
		}
	}
}

// Values materializes the list as a slice, in ascending order. Used
// by the commit/emit path and by tests; the engine itself streams via
// Each to avoid the allocation on the hot commit path.
func (l *List) Values() []uint64 {
	out := make([]uint64, 0, l.size)
	l.Each(func(v uint64) { out = append(out, v) })
	return out
}
