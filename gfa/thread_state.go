package gfa

import (
	"cdbg/tmpio"
	"cdbg/unitig"
)

// ThreadState is the per-thread working state that survives across a
// single sequence's extraction: the thread's output Buffer, its path
// and overlap fragment streams, and the first/second/last
// Oriented_Unitig slots the stitcher needs after all threads join
// (§3 Lifecycles, §4.7).
type ThreadState struct {
	ID      int
	Buffer  *Buffer
	Path    *tmpio.FragmentWriter
	Overlap *tmpio.FragmentWriter

	First, Second, Last unitig.Oriented
}

// NewThreadState allocates the buffer and fragment streams for thread
// id, against sink and the given path/overlap temp-file paths.
func NewThreadState(id int, sink *Sink, pathFile, overlapFile string, fragmentThreshold int) *ThreadState {
	return &ThreadState{
		ID:      id,
		Buffer:  NewBuffer(sink),
		Path:    tmpio.Create(pathFile, fragmentThreshold),
		Overlap: tmpio.Create(overlapFile, fragmentThreshold),
	}
}

// Reset clears the first/second/last slots for a new sequence. The
// caller recreates the fragment streams per sequence (§4.8); the
// Buffer is kept, and is empty after each sequence's Stitch flush.
func (t *ThreadState) Reset() {
	t.First = unitig.Oriented{}
	t.Second = unitig.Oriented{}
	t.Last = unitig.Oriented{}
}

// RecordEmission updates the first/second/last bookkeeping after a
// thread successfully emits (or re-encounters) current as part of its
// own traversal, per §4.5 step 4.
func (t *ThreadState) RecordEmission(current unitig.Oriented) {
	if !t.First.Valid {
		t.First = current
	} else if !t.Second.Valid {
		t.Second = current
	}
	t.Last = current
}
