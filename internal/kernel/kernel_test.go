// Copyright 2025 go-highway Authors. SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"sort"
	"testing"

	"github.com/jaskij/helsing/internal/fingerprint"
)

func newScratch(l int) *Scratch[uint64] {
	cache := fingerprint.New(l, fingerprint.Wide, true)
	return &Scratch[uint64]{
		Cache:        cache,
		Pa:           fingerprint.PartitionConstant(l),
		Fn:           fingerprint.Wide,
		MinFangPairs: 1,
		Dedup:        true,
	}
}

func TestFourDigitVampires(t *testing.T) {
	s := newScratch(4)
	s.Reset()

	Run[uint64](1000, 9999, 100, s)

	got := s.List.Values()
	want := []uint64{1260, 1395, 1435, 1530, 1827, 2187, 6880}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestFourDigitAscending(t *testing.T) {
	s := newScratch(4)
	s.Reset()
	Run[uint64](1000, 9999, 100, s)
	got := s.List.Values()
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }) {
		t.Errorf("result list not ascending: %v", got)
	}
}

func TestPairsAreValid(t *testing.T) {
	s := newScratch(4)
	s.Reset()
	var pairs []Pair
	s.OnPair = func(p Pair) { pairs = append(pairs, p) }
	Run[uint64](1000, 9999, 100, s)

	if len(pairs) == 0 {
		t.Fatal("expected at least one pair")
	}
	for _, p := range pairs {
		if p.Multiplier*p.Multiplicand != p.Product {
			t.Errorf("pair %+v: product mismatch", p)
		}
		if !(p.Multiplier >= 10 && p.Multiplier <= 99) || !(p.Multiplicand >= 10 && p.Multiplicand <= 99) {
			t.Errorf("pair %+v: fang not 2 digits", p)
		}
		if p.Multiplier%10 == 0 && p.Multiplicand%10 == 0 {
			t.Errorf("pair %+v: both fangs trail with zero", p)
		}
		if !sameDigitMultiset(p.Multiplier, p.Multiplicand, p.Product) {
			t.Errorf("pair %+v: digit multiset mismatch", p)
		}
	}
}

func TestEmptyListWithoutDedup(t *testing.T) {
	s := newScratch(4)
	s.Reset()
	s.Dedup = false
	Run[uint64](1000, 9999, 100, s)
	if s.List.Len() != 0 {
		t.Errorf("with Dedup=false, List should stay empty, got %d entries", s.List.Len())
	}
}

func TestKnownPairIsFound(t *testing.T) {
	s := newScratch(4)
	s.Reset()
	var found bool
	s.OnPair = func(p Pair) {
		if p.Product == 1260 && ((p.Multiplier == 21 && p.Multiplicand == 60) || (p.Multiplier == 60 && p.Multiplicand == 21)) {
			found = true
		}
	}
	Run[uint64](1000, 9999, 100, s)
	if !found {
		t.Errorf("expected 1260 = 21 x 60 (in either fang order) to be emitted")
	}
}

func sameDigitMultiset(a, b, p uint64) bool {
	m := map[uint64]int{}
	add := func(n uint64) {
		for n > 0 {
			m[n%10]++
			n /= 10
		}
	}
	sub := func(n uint64) {
		for n > 0 {
			m[n%10]--
			n /= 10
		}
	}
	add(a)
	add(b)
	sub(p)
	for _, c := range m {
		if c != 0 {
			return false
		}
	}
	return true
}
