// Package kmer implements the sliding k-mer window: construction from a
// sequence position, canonical form, and incremental roll-forward by one
// nucleotide. Grounded on ga's reverse-complement helpers in
// constructdbg.go (GetReverseCompNtByteArr, ReverseCompByteArr), adapted
// to maintain the forward and reverse-complement buffers together as the
// window slides, instead of recomputing the reverse complement from
// scratch on every step.
package kmer

import (
	"bytes"

	"cdbg/bnt"
)

// Window is a k-mer anchored at a starting position in some reference
// sequence, along with its reverse complement. Callers must never
// construct a Window over a range that contains a placeholder base; the
// scanner that drives extraction is responsible for skipping such
// positions (see searchValidKmer in extract/extractor.go).
type Window struct {
	k   int
	idx int
	fwd []byte
	rev []byte
}

// New builds the k-mer window starting at seq[idx:idx+k]. The window
// owns independent copies of the forward and reverse-complement bytes so
// that Roll can mutate them without touching the caller's sequence.
func New(seq []byte, idx, k int) Window {
	fwd := make([]byte, k)
	copy(fwd, seq[idx:idx+k])
	return Window{k: k, idx: idx, fwd: fwd, rev: bnt.ReverseComplement(fwd)}
}

// Idx returns the starting position of the window in the reference.
func (w Window) Idx() int { return w.idx }

// Forward returns the k-mer's bytes in sequence orientation. The
// returned slice aliases the window's internal buffer and must not be
// retained across a call to Roll.
func (w Window) Forward() []byte { return w.fwd }

// ReverseComplement returns the reverse complement of the forward
// k-mer. The returned slice aliases the window's internal buffer.
func (w Window) ReverseComplement() []byte { return w.rev }

// Canonical returns the lexicographically smaller of the forward k-mer
// and its reverse complement.
func (w Window) Canonical() []byte {
	if bytes.Compare(w.fwd, w.rev) <= 0 {
		return w.fwd
	}
	return w.rev
}

// IsForwardCanonical reports whether the forward k-mer is already its
// own canonical form (ties, i.e. palindromic k-mers, count as forward).
func (w Window) IsForwardCanonical() bool {
	return bytes.Compare(w.fwd, w.rev) <= 0
}

// Roll advances the window by one position, consuming next (the base at
// seq[idx+k]) and dropping the leading base. It updates both the
// forward and the reverse-complement buffers in place.
func (w *Window) Roll(next byte) {
	k := w.k
	copy(w.fwd, w.fwd[1:])
	w.fwd[k-1] = next
	// revcomp(newKmer) = complement(next) + revcomp(oldKmer)[:k-1]
	copy(w.rev[1:], w.rev[:k-1])
	w.rev[0] = bnt.Complement(next)
	w.idx++
}

// Clone returns an independent copy of the window, safe to roll without
// affecting w.
func (w Window) Clone() Window {
	fwd := make([]byte, w.k)
	rev := make([]byte, w.k)
	copy(fwd, w.fwd)
	copy(rev, w.rev)
	return Window{k: w.k, idx: w.idx, fwd: fwd, rev: rev}
}
