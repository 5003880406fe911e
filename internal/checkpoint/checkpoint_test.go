// Copyright 2025 go-highway Authors. SPDX-License-Identifier: Apache-2.0

package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsNotError(t *testing.T) {
	_, ok, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Errorf("Load on a missing file should report ok=false")
	}
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckpt")
	w, err := NewWriter(path, 1000, 999999)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Save(9999, 6); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := w.Save(200000, 12); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, ok, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("Load should report ok=true for an existing checkpoint")
	}
	if st.Min != 1000 || st.Max != 999999 {
		t.Errorf("Load() header = {%d %d}, want {1000 999999}", st.Min, st.Max)
	}
	if st.LastCommitted != 200000 || st.Count != 12 {
		t.Errorf("Load() state = {LastCommitted:%d Count:%d}, want {200000 12}", st.LastCommitted, st.Count)
	}
}

func TestResumeAppendsWithoutDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckpt")
	w1, err := NewWriter(path, 1000, 9999)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w1.Save(9999, 6); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := w1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	w2, err := NewWriter(path, 1000, 9999)
	if err != nil {
		t.Fatalf("NewWriter (resume): %v", err)
	}
	if err := w2.Save(99999, 6); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := w2.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, ok, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("Load should succeed")
	}
	if st.Min != 1000 || st.Max != 9999 {
		t.Errorf("header corrupted after resume: {%d %d}", st.Min, st.Max)
	}
	if st.LastCommitted != 99999 {
		t.Errorf("LastCommitted = %d, want 99999 (the most recent record)", st.LastCommitted)
	}
}

func TestLoadRejectsMalformedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckpt")
	w, err := NewWriter(path, 0, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Close()

	// overwrite with a header that has the wrong field count.
	if err := os.WriteFile(path, []byte("1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Errorf("Load should reject a malformed header line")
	}
}
