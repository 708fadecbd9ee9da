package gfa

import (
	"bytes"
	"fmt"
	"log"

	"cdbg/unitig"
)

// Stitch runs the post-join pass for one sequence (§4.7): it emits the
// inter-thread boundary links, flushes and closes the per-thread
// fragment streams, discovers the sequence's first GFA link, assembles
// the P line, writes it to sink, and deletes the temp fragment files.
// states must be in thread-id order. seqNum is the 1-based sequence
// counter the P line's PathName is rendered from (§4.7 step 4).
func Stitch(states []*ThreadState, sink *Sink, seqNum, k int) error {
	if err := writeInterThreadLinks(states, k); err != nil {
		return err
	}
	if err := flushAndCloseFragments(states); err != nil {
		return err
	}

	left, right := searchFirstLink(states)
	if !left.Valid {
		// No valid k-mer produced a unitig for this sequence (§4.7 step 3).
		return removeFragments(states)
	}

	if err := writePath(states, sink, seqNum, k, left, right); err != nil {
		return err
	}
	return removeFragments(states)
}

// writeInterThreadLinks implements §4.7 step 1: scan threads in id
// order, stitching each thread's first unitig to the nearest preceding
// thread's last unitig, and recording the stitched link into the left
// thread's path/overlap fragments so path assembly stays a verbatim
// concatenation.
func writeInterThreadLinks(states []*ThreadState, k int) error {
	var left unitig.Oriented
	leftIdx := -1

	for t, st := range states {
		if !left.Valid {
			if st.Last.Valid {
				left, leftIdx = st.Last, t
			}
			continue
		}
		if st.First.Valid {
			right := st.First
			if err := st.Buffer.WriteLine(FormatLink(left, right, k)); err != nil {
				return err
			}
			if err := appendLinkToPath(states[leftIdx], left, right, k); err != nil {
				return err
			}
			left, leftIdx = st.Last, t
		}
	}
	return nil
}

// appendLinkToPath mirrors CdBG_GFA_Writer::append_link_to_path: only
// the destination of the link is written, since the very first vertex
// of the sequence's tiling is supplied separately by the stitcher.
func appendLinkToPath(st *ThreadState, left, right unitig.Oriented, k int) error {
	if err := st.Path.WriteString("," + PathSegmentToken(right)); err != nil {
		return err
	}
	overlap := unitig.Overlap(left, right, k)
	return st.Overlap.WriteString(fmt.Sprintf(",%dM", overlap))
}

func flushAndCloseFragments(states []*ThreadState) error {
	for _, st := range states {
		if err := st.Buffer.Flush(); err != nil {
			return err
		}
		if err := st.Path.Close(); err != nil {
			return err
		}
		if err := st.Overlap.Close(); err != nil {
			return err
		}
	}
	return nil
}

// searchFirstLink implements §4.7 step 3: find the sequence's first
// two emitted unitigs, which are not recoverable from the fragment
// streams (those only record link destinations).
func searchFirstLink(states []*ThreadState) (left, right unitig.Oriented) {
	for _, st := range states {
		if st.First.Valid {
			if !left.Valid {
				left = st.First
			} else {
				right = st.First
				return left, right
			}
		}
		if st.Second.Valid {
			right = st.Second
			return left, right
		}
	}
	return left, right
}

// writePath implements §4.7 step 4. seqNum is the 1-based sequence
// counter rendered into the PathName (P<seqNum>).
func writePath(states []*ThreadState, sink *Sink, seqNum, k int, left, right unitig.Oriented) error {
	var buf []byte
	buf = append(buf, fmt.Sprintf("P\tP%d\t", seqNum)...)
	buf = append(buf, PathSegmentToken(left)...)

	for _, st := range states {
		var frag bytes.Buffer
		if err := st.Path.CopyInto(&frag); err != nil {
			return err
		}
		buf = append(buf, frag.Bytes()...)
	}

	buf = append(buf, '\t')
	if !right.Valid {
		buf = append(buf, '*')
	} else {
		buf = append(buf, fmt.Sprintf("%dM", unitig.Overlap(left, right, k))...)
		for _, st := range states {
			var frag bytes.Buffer
			if err := st.Overlap.CopyInto(&frag); err != nil {
				return err
			}
			buf = append(buf, frag.Bytes()...)
		}
	}
	buf = append(buf, '\n')

	return sink.Write(buf)
}

func removeFragments(states []*ThreadState) error {
	for _, st := range states {
		if err := st.Path.Remove(); err != nil {
			// Not fatal, per §9(c): report but keep stitching the rest.
			log.Printf("[Stitch] failed to remove path fragment for thread %d: %v\n", st.ID, err)
		}
		if err := st.Overlap.Remove(); err != nil {
			log.Printf("[Stitch] failed to remove overlap fragment for thread %d: %v\n", st.ID, err)
		}
	}
	return nil
}
