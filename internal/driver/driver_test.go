// Copyright 2025 go-highway Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"testing"

	"github.com/jaskij/helsing/internal/resultlist"
)

func TestSubrangesSplitsByEvenLength(t *testing.T) {
	// 500 (3 digits, odd) advances to 1000; 10000-99999 (5 digits, odd)
	// is skipped entirely; 200000 (6 digits) truncates the final piece.
	got := Subranges(500, 200000)
	want := []Subrange{
		{LMin: 1000, LMax: 9999, Len: 4},
		{LMin: 100000, LMax: 200000, Len: 6},
	}
	if len(got) != len(want) {
		t.Fatalf("Subranges(500,200000) = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subrange %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSubrangesSingleEvenLength(t *testing.T) {
	got := Subranges(1000, 9999)
	want := []Subrange{{LMin: 1000, LMax: 9999, Len: 4}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Subranges(1000,9999) = %+v, want %+v", got, want)
	}
}

func TestSubrangesMinEqualsMax(t *testing.T) {
	got := Subranges(1260, 1260)
	if len(got) != 1 {
		t.Fatalf("Subranges(1260,1260) = %+v, want one subrange", got)
	}
	if got[0].LMin != 1260 || got[0].LMax != 1260 {
		t.Errorf("Subranges(1260,1260) = %+v, want LMin=LMax=1260", got[0])
	}
}

func TestRunEndToEndCountVampires(t *testing.T) {
	var found []uint64
	err := Run(1000, 9999, Options{
		Threads:      4,
		MinFangPairs: 1,
		CacheEnabled: true,
		Wide:         true,
		Dedup:        true,
	}, func(list *resultlist.List) error {
		found = append(found, list.Values()...)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint64{1260, 1395, 1435, 1530, 1827, 2187, 6880}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Errorf("found[%d] = %d, want %d", i, found[i], want[i])
		}
	}
}

func TestRunNarrowEncodingMatchesWide(t *testing.T) {
	runWith := func(wide bool) []uint64 {
		var found []uint64
		err := Run(1000, 9999, Options{
			Threads: 2, MinFangPairs: 1, CacheEnabled: true, Wide: wide, Dedup: true,
		}, func(list *resultlist.List) error {
			found = append(found, list.Values()...)
			return nil
		})
		if err != nil {
			t.Fatalf("Run(wide=%v): %v", wide, err)
		}
		return found
	}
	wide := runWith(true)
	narrow := runWith(false)
	if len(wide) != len(narrow) {
		t.Fatalf("wide=%v narrow=%v", wide, narrow)
	}
	for i := range wide {
		if wide[i] != narrow[i] {
			t.Errorf("wide[%d]=%d != narrow[%d]=%d", i, wide[i], i, narrow[i])
		}
	}
}
