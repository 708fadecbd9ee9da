// Package unitig implements the boundary oracle (C3) and the
// Oriented_Unitig value produced by a successful unitig emission,
// grounded on the boundary-detection logic in the reference
// CdBG_GFA_Writer (output_maximal_unitigs_gfa / output_unitig_gfa).
package unitig

import (
	"bytes"

	"cdbg/bnt"
	"cdbg/vertex"
)

// Oriented is the Oriented_Unitig value: a claimed unitig's identity
// (the bucket id of its canonical-minimal flanking k-mer), its
// direction, and the inclusive range [StartIdx, EndIdx] of k-mer
// starting indices it spans in the reference sequence that produced it.
type Oriented struct {
	ID       uint64
	Dir      vertex.Direction
	StartIdx int
	EndIdx   int
	Valid    bool
}

// New builds the Oriented_Unitig for the maximal unitig spanning
// [start, end] (inclusive, in k-mer starting indices), claiming its
// bucket id from the canonical-minimal flanking k-mer, per §4.5 step 2
// of the extraction design.
func New(table vertex.Table, start, end vertex.AnnotatedKmer) Oriented {
	minFlanking := start.Window.Canonical()
	if bytes.Compare(end.Window.Canonical(), minFlanking) < 0 {
		minFlanking = end.Window.Canonical()
	}
	dir := vertex.FWD
	if bytes.Compare(start.Window.Forward(), end.Window.ReverseComplement()) >= 0 {
		dir = vertex.BWD
	}
	return Oriented{
		ID:       table.BucketID(minFlanking),
		Dir:      dir,
		StartIdx: start.Idx(),
		EndIdx:   end.Idx(),
		Valid:    true,
	}
}

// Overlap returns the GFA overlap (in bases) between two adjacent
// Oriented unitigs in the traversal order they were emitted: k-1 when
// to immediately continues from's flank, 0 otherwise (sequence
// start/end or a placeholder gap; never inside a contiguous valid
// run), per invariant 4 of the data model.
func Overlap(from, to Oriented, k int) int {
	if to.StartIdx == from.EndIdx+1 {
		return k - 1
	}
	return 0
}

// Sequence returns the unitig's nucleotide string in the orientation
// implied by dir: the forward slice of the reference for FWD, its
// reverse complement for BWD.
func Sequence(seq []byte, o Oriented, k int) []byte {
	lo, hi := o.StartIdx, o.EndIdx+k // [lo, hi)
	if o.Dir == vertex.FWD {
		out := make([]byte, hi-lo)
		copy(out, seq[lo:hi])
		return out
	}
	return bnt.ReverseComplement(seq[lo:hi])
}
