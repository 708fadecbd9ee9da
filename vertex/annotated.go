package vertex

import "cdbg/kmer"

// AnnotatedKmer pairs a k-mer window with the lookup result for its
// canonical form: the upstream vertex_class, and this occurrence's
// Direction relative to that canonical form. It never mutates the
// table (lookups are Table.Read-only through BucketID/Read).
type AnnotatedKmer struct {
	Window kmer.Window
	Class  VertexClass
	Dir    Direction
}

// Annotate builds an AnnotatedKmer for the window w by looking up the
// vertex_class at w's canonical form's bucket id.
func Annotate(w kmer.Window, table Table) AnnotatedKmer {
	bucket := table.BucketID(w.Canonical())
	state := table.Read(bucket)
	dir := FWD
	if !w.IsForwardCanonical() {
		dir = BWD
	}
	return AnnotatedKmer{Window: w, Class: state.Class(), Dir: dir}
}

// New builds the k-mer window at seq[idx:idx+k] and annotates it.
func New(seq []byte, idx, k int, table Table) AnnotatedKmer {
	return Annotate(kmer.New(seq, idx, k), table)
}

// RollTo advances a to the next position, rolling its window forward
// by the given next base and re-annotating against table. It rolls a
// clone of a.Window rather than a.Window itself: Window's fwd/rev
// buffers are owned slices, and Window.Roll mutates them in place, so
// rolling the receiver's own window would corrupt a (and anything else
// aliasing it, such as a saved unipath start) into holding the next
// k-mer instead of its own.
func (a AnnotatedKmer) RollTo(next byte, table Table) AnnotatedKmer {
	w := a.Window.Clone()
	w.Roll(next)
	return Annotate(w, table)
}

// Idx returns the annotated k-mer's starting position in the
// reference sequence.
func (a AnnotatedKmer) Idx() int { return a.Window.Idx() }

// BucketID returns the bucket id of this k-mer's canonical form.
func (a AnnotatedKmer) BucketID(table Table) uint64 {
	return table.BucketID(a.Window.Canonical())
}
