package gfa

import (
	"fmt"

	"cdbg/unitig"
)

// FormatSegment renders a GFA S line for the unitig o, whose
// nucleotide text (already oriented per o.Dir) is seq. LN and KC
// follow invariant 3 of the data model.
func FormatSegment(o unitig.Oriented, seq []byte, k int) string {
	ln := o.EndIdx - o.StartIdx + k
	kc := o.EndIdx - o.StartIdx + 1
	return fmt.Sprintf("S\t%d\t%s\tLN:i:%d\tKC:i:%d\n", o.ID, seq, ln, kc)
}

// FormatLink renders a GFA L line from one Oriented_Unitig to the
// next, with the overlap computed per invariant 4.
func FormatLink(from, to unitig.Oriented, k int) string {
	overlap := unitig.Overlap(from, to, k)
	return fmt.Sprintf("L\t%d\t%s\t%d\t%s\t%dM\n", from.ID, from.Dir, to.ID, to.Dir, overlap)
}

// PathSegmentToken renders one SegmentNames token for o ("<id><+/->").
func PathSegmentToken(o unitig.Oriented) string {
	return fmt.Sprintf("%d%s", o.ID, o.Dir)
}
