package kmer

import (
	"bytes"
	"testing"
)

func TestNewAndCanonical(t *testing.T) {
	seq := []byte("ACGTACGT")
	w := New(seq, 0, 3)
	if !bytes.Equal(w.Forward(), []byte("ACG")) {
		t.Fatalf("Forward() = %s, want ACG", w.Forward())
	}
	if !bytes.Equal(w.ReverseComplement(), []byte("CGT")) {
		t.Fatalf("ReverseComplement() = %s, want CGT", w.ReverseComplement())
	}
	// ACG < CGT lexicographically, so the forward form is canonical.
	if !bytes.Equal(w.Canonical(), []byte("ACG")) {
		t.Fatalf("Canonical() = %s, want ACG", w.Canonical())
	}
	if !w.IsForwardCanonical() {
		t.Fatal("expected forward k-mer to be canonical")
	}
}

func TestRollMatchesFreshWindow(t *testing.T) {
	seq := []byte("ACGTACGTTGCA")
	k := 4
	w := New(seq, 0, k)
	for idx := 1; idx+k <= len(seq); idx++ {
		w.Roll(seq[idx+k-1])
		fresh := New(seq, idx, k)
		if !bytes.Equal(w.Forward(), fresh.Forward()) {
			t.Fatalf("idx=%d: rolled forward %s != fresh %s", idx, w.Forward(), fresh.Forward())
		}
		if !bytes.Equal(w.ReverseComplement(), fresh.ReverseComplement()) {
			t.Fatalf("idx=%d: rolled rev-comp %s != fresh %s", idx, w.ReverseComplement(), fresh.ReverseComplement())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	seq := []byte("ACGTACGT")
	w := New(seq, 0, 3)
	c := w.Clone()
	c.Roll('A')
	if bytes.Equal(w.Forward(), c.Forward()) {
		t.Fatal("expected clone to diverge from original after Roll")
	}
	if !bytes.Equal(w.Forward(), []byte("ACG")) {
		t.Fatal("original window must be unaffected by rolling its clone")
	}
}
