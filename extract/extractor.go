// Package extract implements the per-thread maximal-unitig extractor
// (C5) and the per-sequence orchestrator (C8) that drives it. Grounded
// on the reference CdBG_GFA_Writer's output_gfa_off_substring /
// output_maximal_unitigs_gfa / output_unitig_gfa traversal, translated
// from recursive C++ control flow into an explicit Go state machine
// over a goroutine per thread, in the spirit of ga's
// paraLookupComplexNode / paraGenerateDBGEdges worker functions
// (constructdbg.go) that each walk an assigned slice and publish
// results through shared, externally-synchronized state.
package extract

import (
	"strconv"

	"cdbg/bnt"
	"cdbg/gfa"
	"cdbg/unitig"
	"cdbg/vertex"
)

// ExtractSlice walks seq's valid k-mer starting positions in
// [leftEnd, rightEnd], detecting and claiming every maximal unitig that
// starts within the slice, per §4.5. A thread continues past rightEnd
// whenever it is in the middle of an open unitig, so a unitig that
// straddles a thread boundary is always closed by the thread that
// opened it (§4.5 Boundary policy, §9).
func ExtractSlice(seq []byte, k int, leftEnd, rightEnd int, table vertex.Table, st *gfa.ThreadState) error {
	idx := leftEnd
	for idx <= rightEnd {
		idx = searchValidKmer(seq, idx, rightEnd, k)
		if idx > rightEnd {
			break
		}
		next, err := extractRun(seq, k, idx, rightEnd, table, st)
		if err != nil {
			return err
		}
		idx = next
	}
	return nil
}

// searchValidKmer returns the first index >= idx (and <= rightEnd+1,
// as a sentinel for "none found") whose k-mer window is
// placeholder-free.
func searchValidKmer(seq []byte, idx, rightEnd, k int) int {
	for idx <= rightEnd {
		if !bnt.HasPlaceholder(seq[idx : idx+k]) {
			return idx
		}
		idx++
	}
	return idx
}

// extractRun processes one maximal placeholder-free run starting at
// idx, emitting every maximal unitig that starts within it up to
// rightEnd (continuing past rightEnd to close a unitig left open at
// the boundary), and returns the index just past the run (or past the
// last open unitig it was forced to close).
func extractRun(seq []byte, k int, idx, rightEnd int, table vertex.Table, st *gfa.ThreadState) (int, error) {
	seqLen := len(seq)
	curr := vertex.New(seq, idx, k, table)

	// The window [idx, idx+k) is already known to be placeholder-free
	// (searchValidKmer guarantees it), so a neighbor exists and is
	// valid as soon as the single new boundary base is not itself a
	// placeholder; the rest of its window is already-validated
	// overlap with the current window.
	hasLeft := idx > 0 && seq[idx-1] != bnt.Placeholder
	hasRight := idx+k < seqLen && seq[idx+k] != bnt.Placeholder

	if !hasLeft && !hasRight {
		// An isolated valid k-mer: a maximal unitig by itself.
		return idx + k, emit(table, st, seq, curr, curr, k)
	}

	if !hasRight {
		var prev vertex.AnnotatedKmer
		if hasLeft {
			prev = vertex.New(seq, idx-1, k, table)
		}
		if !hasLeft || unitig.IsUnipathStart(curr.Class, curr.Dir, prev.Class, prev.Dir) {
			if err := emit(table, st, seq, curr, curr, k); err != nil {
				return 0, err
			}
		}
		return idx + k, nil
	}

	next := curr.RollTo(seq[idx+k], table)

	onUnipath := false
	var unipathStart, prev vertex.AnnotatedKmer

	if !hasLeft {
		onUnipath = true
		unipathStart = curr
	} else {
		prev = vertex.New(seq, idx-1, k, table)
		if unitig.IsUnipathStart(curr.Class, curr.Dir, prev.Class, prev.Dir) {
			onUnipath = true
			unipathStart = curr
		}
	}

	if onUnipath && unitig.IsUnipathEnd(curr.Class, curr.Dir, next.Class, next.Dir) {
		if err := emit(table, st, seq, unipathStart, curr, k); err != nil {
			return 0, err
		}
		onUnipath = false
	}

	for idx++; onUnipath || idx <= rightEnd; idx++ {
		prev, curr = curr, next

		if unitig.IsUnipathStart(curr.Class, curr.Dir, prev.Class, prev.Dir) {
			onUnipath = true
			unipathStart = curr
		}

		if idx+k == seqLen || seq[idx+k] == bnt.Placeholder {
			if onUnipath {
				if err := emit(table, st, seq, unipathStart, curr, k); err != nil {
					return 0, err
				}
				onUnipath = false
			}
			return idx + k, nil
		}

		next = curr.RollTo(seq[idx+k], table)

		if onUnipath && unitig.IsUnipathEnd(curr.Class, curr.Dir, next.Class, next.Dir) {
			if err := emit(table, st, seq, unipathStart, curr, k); err != nil {
				return 0, err
			}
			onUnipath = false
		}
	}

	return idx + k, nil
}

// emit implements §4.5's emit_unitig: claim the segment via the vertex
// table's CAS protocol, buffer the S line on a win, update the
// thread's first/second/last bookkeeping, and buffer an L line plus
// path/overlap fragments when this is not the thread's first unitig.
func emit(table vertex.Table, st *gfa.ThreadState, seq []byte, start, end vertex.AnnotatedKmer, k int) error {
	current := unitig.New(table, start, end)

	bucket := current.ID
	state := table.Read(bucket)
	if !state.Outputted() {
		if table.CompareAndSet(bucket, state, state.WithOutputted()) {
			line := gfa.FormatSegment(current, unitig.Sequence(seq, current, k), k)
			if err := st.Buffer.WriteLine(line); err != nil {
				return err
			}
		}
	}

	prev := st.Last
	st.RecordEmission(current)

	if prev.Valid {
		if err := st.Buffer.WriteLine(gfa.FormatLink(prev, current, k)); err != nil {
			return err
		}
		if err := st.Path.WriteString("," + gfa.PathSegmentToken(current)); err != nil {
			return err
		}
		overlap := unitig.Overlap(prev, current, k)
		if err := st.Overlap.WriteString(commaOverlap(overlap)); err != nil {
			return err
		}
	}
	return nil
}

func commaOverlap(overlap int) string {
	return "," + strconv.Itoa(overlap) + "M"
}
