// Copyright 2025 go-highway Authors. SPDX-License-Identifier: Apache-2.0

package resultlist

import "testing"

func TestPushAndValues(t *testing.T) {
	l := New()
	for _, v := range []uint64{1260, 1395, 1435} {
		l.Push(v)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	got := l.Values()
	want := []uint64{1260, 1395, 1435}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEmptyList(t *testing.T) {
	l := New()
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if got := l.Values(); len(got) != 0 {
		t.Errorf("Values() = %v, want empty", got)
	}
	l.Each(func(v uint64) { t.Errorf("Each called on empty list with %d", v) })
}

func TestSpansMultipleBuckets(t *testing.T) {
	l := New()
	n := BucketSize*3 + 7
	for i := 0; i < n; i++ {
		l.Push(uint64(i))
	}
	if l.Len() != n {
		t.Fatalf("Len() = %d, want %d", l.Len(), n)
	}
	i := 0
	l.Each(func(v uint64) {
		if v != uint64(i) {
			t.Errorf("Each value %d at position %d, want %d", v, i, i)
		}
		i++
	})
	if i != n {
		t.Errorf("Each visited %d values, want %d", i, n)
	}
}

func TestBucketBoundaryExact(t *testing.T) {
	l := New()
	for i := 0; i < BucketSize; i++ {
		l.Push(uint64(i))
	}
	// a push landing exactly on the boundary must start a fresh bucket,
	// not overflow the full one.
	l.Push(999)
	got := l.Values()
	if len(got) != BucketSize+1 {
		t.Fatalf("Values() len = %d, want %d", len(got), BucketSize+1)
	}
	if got[BucketSize] != 999 {
		t.Errorf("Values()[%d] = %d, want 999", BucketSize, got[BucketSize])
	}
}
